package initiate_payment

import initiatePayment "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/initiate_payment"

// PaymentResponse HTTP response model
type PaymentResponse struct {
	AppointmentID int64   `json:"appointmentId"`
	PaymentID     string  `json:"paymentId"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Amount        float64 `json:"amount"`
	RedirectURL   string  `json:"redirectUrl"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *initiatePayment.Response) *PaymentResponse {
	return &PaymentResponse{
		AppointmentID: resp.AppointmentID,
		PaymentID:     resp.PaymentID,
		InvoiceNumber: resp.InvoiceNumber,
		Amount:        resp.Amount,
		RedirectURL:   resp.RedirectURL,
	}
}
