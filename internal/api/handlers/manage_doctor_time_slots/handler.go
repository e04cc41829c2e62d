package manage_doctor_time_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/schedule"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidSlot        = "некорректный слот: weekday 0..6, время в формате HH:MM"
	msgDoctorNotFound     = "врач не найден"
	msgSlotNotFound       = "слот не найден"
	msgForbidden          = "управлять расписанием может только врач или персонал"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAdd POST /api/v1/doctors/{doctorId}/time-slots
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathID(r, "doctorId")
	if err != nil {
		h.logger.Warn("POST /doctors/{id}/time-slots - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/time-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.AddSlot(r.Context(), actor, req.ToServiceRequest(doctorID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, schedule.ErrScheduleConflict):
			h.logger.Warn("POST /doctors/{id}/time-slots - Schedule conflict: doctor_id=%d, %v", doctorID, err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, schedule.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /doctors/{id}/time-slots - Access denied: doctor_id=%d, user_id=%d", doctorID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /doctors/{id}/time-slots - Failed to add slot: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/{id}/time-slots - Slot added: doctor_id=%d, slot_id=%d", doctorID, slot.ID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}

// HandleRemove DELETE /api/v1/doctors/{doctorId}/time-slots/{slotId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathID(r, "doctorId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /doctors/{id}/time-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.RemoveSlot(r.Context(), actor, doctorID, slotID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, schedule.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /doctors/{id}/time-slots/{id} - Access denied: doctor_id=%d, user_id=%d", doctorID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /doctors/{id}/time-slots/{id} - Failed to remove slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /doctors/{id}/time-slots/{id} - Slot removed: doctor_id=%d, slot_id=%d", doctorID, slotID)
	w.WriteHeader(http.StatusNoContent)
}
