package domain

import "time"

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodGateway PaymentMethod = "gateway"
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
)

// PaymentRecordStatus статус попытки оплаты
type PaymentRecordStatus string

const (
	PaymentRecordPending   PaymentRecordStatus = "pending"
	PaymentRecordCompleted PaymentRecordStatus = "completed"
	PaymentRecordFailed    PaymentRecordStatus = "failed"
	PaymentRecordRefunded  PaymentRecordStatus = "refunded"
)

// Payment попытка оплаты записи
type Payment struct {
	ID            int64
	AppointmentID int64
	Amount        float64
	Method        PaymentMethod
	PaymentID     string // ID платежа в платёжном шлюзе
	InvoiceNumber string
	TransactionID *string
	Status        PaymentRecordStatus
	PaidAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the gateway has not reported the outcome yet
func (p *Payment) IsPending() bool {
	return p.Status == PaymentRecordPending
}
