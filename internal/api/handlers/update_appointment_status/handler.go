package update_appointment_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "нет доступа к записи"
	msgCannotCancel         = "завершённую или отменённую запись нельзя отменить"
	msgCannotConfirm        = "подтвердить можно только запись в статусе pending"
	msgCannotComplete       = "завершить можно только подтверждённую запись"

	msgCancelled = "запись отменена"
	msgConfirmed = "запись подтверждена"
	msgCompleted = "приём завершён"
)

type transition func(ctx context.Context, id int64, actor domain.Actor) error

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCancel PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "cancel", h.service.Cancel, domain.StatusCancelled, msgCancelled)
}

// HandleConfirm PATCH /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "confirm", h.service.Confirm, domain.StatusConfirmed, msgConfirmed)
}

// HandleComplete PATCH /api/v1/appointments/{appointmentId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "complete", h.service.Complete, domain.StatusCompleted, msgCompleted)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action string, apply transition,
	status domain.AppointmentStatus, message string) {
	appointmentID, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/%s - Invalid appointment ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := apply(r.Context(), appointmentID, actor); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/%s - Appointment not found: appointment_id=%d", action, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/%s - Access denied: appointment_id=%d, user_id=%d",
				action, appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrCannotCancel):
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, appointments.ErrCannotConfirm):
			handlers.RespondBadRequest(w, msgCannotConfirm)

		case errors.Is(err, appointments.ErrCannotComplete):
			handlers.RespondBadRequest(w, msgCannotComplete)

		default:
			h.logger.Error("PATCH /appointments/{id}/%s - Failed: appointment_id=%d, error=%v", action, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/%s - Success: appointment_id=%d, user_id=%d", action, appointmentID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{
		ID:      appointmentID,
		Status:  string(status),
		Message: message,
	})
}
