package get_doctor_dashboard

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	getDoctorDashboard "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/get_doctor_dashboard"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgDoctorNotFound  = "врач не найден"
	msgForbidden       = "дашборд доступен только врачу и персоналу"
)

type Handler struct {
	useCase GetDoctorDashboardUseCase
	logger  Logger
}

func NewHandler(useCase GetDoctorDashboardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathID(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/dashboard - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDoctorDashboard.Request{
		DoctorID: doctorID,
		Actor:    actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDoctorDashboard.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, getDoctorDashboard.ErrAccessDenied):
			h.logger.Warn("GET /doctors/{id}/dashboard - Access denied: doctor_id=%d, user_id=%d", doctorID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /doctors/{id}/dashboard - Failed to build dashboard: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/dashboard - Dashboard built: doctor_id=%d, today=%d, upcoming=%d",
		doctorID, len(result.Today), result.UpcomingCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
