package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/admission"
)

const (
	msgDateInPast        = "нельзя записаться на прошедшую дату"
	msgDateTooFar        = "дата приёма слишком далеко в будущем"
	msgDoctorUnavailable = "врач сейчас не принимает записи"
	msgInvalidTime       = "некорректное время приёма, ожидается HH:MM"
	msgTryAgain          = "параллельная запись на это время, попробуйте ещё раз"
)

// RespondAdmissionError отвечает на отказ в записи; false, если ошибка не относится к допуску
func RespondAdmissionError(w http.ResponseWriter, err error) bool {
	var capErr *domain.CapacityExceededError

	switch {
	case errors.As(err, &capErr):
		RespondConflict(w, capErr.Error())
	case errors.Is(err, domain.ErrCapacityExceeded):
		RespondConflict(w, err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		RespondServiceUnavailable(w, msgTryAgain)
	case errors.Is(err, admission.ErrDateInPast):
		RespondBadRequest(w, msgDateInPast)
	case errors.Is(err, admission.ErrDateTooFarInFuture):
		RespondBadRequest(w, msgDateTooFar)
	case errors.Is(err, admission.ErrDoctorUnavailable):
		RespondBadRequest(w, msgDoctorUnavailable)
	case errors.Is(err, admission.ErrInvalidTime):
		RespondBadRequest(w, msgInvalidTime)
	default:
		return false
	}
	return true
}
