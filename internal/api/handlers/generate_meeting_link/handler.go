package generate_meeting_link

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	generateMeetingLink "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/generate_meeting_link"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "нет доступа к записи"
	msgNotPaid              = "ссылка на встречу доступна только после оплаты"
	msgMeetingService       = "сервис видеовстреч недоступен, попробуйте позже"
)

type Handler struct {
	useCase GenerateMeetingLinkUseCase
	logger  Logger
}

func NewHandler(useCase GenerateMeetingLinkUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/meeting-link
// 201 при создании встречи, 200 если ссылка уже была
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/meeting-link - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateMeetingLink.Request{
		AppointmentID: appointmentID,
		Actor:         &actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateMeetingLink.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, generateMeetingLink.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/meeting-link - Access denied: appointment_id=%d, user_id=%d", appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, generateMeetingLink.ErrNotPaid):
			handlers.RespondBadRequest(w, msgNotPaid)

		case errors.Is(err, generateMeetingLink.ErrMeetingService):
			h.logger.Error("POST /appointments/{id}/meeting-link - Meeting service error: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadGateway(w, msgMeetingService)

		default:
			h.logger.Error("POST /appointments/{id}/meeting-link - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /appointments/{id}/meeting-link - Meeting link ready: appointment_id=%d, created=%t", appointmentID, result.Created)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
