package initiate_payment

import "github.com/m04kA/SMC-DoctorBookingService/internal/domain"

// Request модель запроса на оплату записи
type Request struct {
	AppointmentID int64
	Actor         domain.Actor
}

// Response модель ответа со ссылкой на оплату
type Response struct {
	AppointmentID int64
	PaymentID     string
	InvoiceNumber string
	Amount        float64
	RedirectURL   string
}
