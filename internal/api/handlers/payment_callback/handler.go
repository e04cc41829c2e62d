package payment_callback

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers"
	paymentCallback "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/payment_callback"
)

const (
	msgMissingParams   = "параметры paymentID и status обязательны"
	msgInvalidStatus   = "некорректный статус платежа"
	msgPaymentNotFound = "платёж не найден"
)

type Handler struct {
	useCase PaymentCallbackUseCase
	logger  Logger
}

func NewHandler(useCase PaymentCallbackUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/callback
// Query params: paymentID, status (success / failure / cancel)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	paymentID := query.Get("paymentID")
	status := query.Get("status")

	if paymentID == "" || status == "" {
		h.logger.Warn("GET /payments/callback - Missing parameters: paymentID=%q, status=%q", paymentID, status)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &paymentCallback.Request{
		PaymentID: paymentID,
		Status:    status,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentCallback.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, paymentCallback.ErrPaymentNotFound):
			h.logger.Warn("GET /payments/callback - Payment not found: payment_id=%s", paymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		default:
			h.logger.Error("GET /payments/callback - Failed to process callback: payment_id=%s, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/callback - Callback processed: payment_id=%s, appointment_id=%d, status=%s, already_processed=%t",
		paymentID, result.AppointmentID, result.Status, result.AlreadyProcessed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
