package payment_callback

import paymentCallback "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/payment_callback"

// CallbackResponse HTTP response model
type CallbackResponse struct {
	AppointmentID    int64   `json:"appointmentId"`
	PaymentID        string  `json:"paymentId"`
	Status           string  `json:"status"`
	TransactionID    *string `json:"transactionId,omitempty"`
	AlreadyProcessed bool    `json:"alreadyProcessed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *paymentCallback.Response) *CallbackResponse {
	return &CallbackResponse{
		AppointmentID:    resp.AppointmentID,
		PaymentID:        resp.PaymentID,
		Status:           resp.Status,
		TransactionID:    resp.TransactionID,
		AlreadyProcessed: resp.AlreadyProcessed,
	}
}
