package initiate_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	initiatePayment "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/initiate_payment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "оплатить запись может только пациент"
	msgAlreadyPaid          = "запись уже оплачена"
	msgCannotPay            = "завершённую или отменённую запись нельзя оплатить"
	msgGateway              = "платёжный шлюз недоступен, попробуйте позже"
)

type Handler struct {
	useCase InitiatePaymentUseCase
	logger  Logger
}

func NewHandler(useCase InitiatePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/payments - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &initiatePayment.Request{
		AppointmentID: appointmentID,
		Actor:         actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, initiatePayment.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, initiatePayment.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/payments - Access denied: appointment_id=%d, user_id=%d", appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, initiatePayment.ErrAlreadyPaid):
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, initiatePayment.ErrCannotPay):
			handlers.RespondBadRequest(w, msgCannotPay)

		case errors.Is(err, initiatePayment.ErrGateway):
			h.logger.Error("POST /appointments/{id}/payments - Gateway error: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadGateway(w, msgGateway)

		default:
			h.logger.Error("POST /appointments/{id}/payments - Failed to initiate payment: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/payments - Payment initiated: appointment_id=%d, payment_id=%s, invoice=%s",
		appointmentID, result.PaymentID, result.InvoiceNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
