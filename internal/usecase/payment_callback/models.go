package payment_callback

// Статусы, с которыми шлюз возвращает пользователя
const (
	CallbackSuccess = "success"
	CallbackFailure = "failure"
	CallbackCancel  = "cancel"
)

// Request параметры возврата со страницы оплаты
type Request struct {
	PaymentID string
	Status    string
}

// Response итог обработки платежа
type Response struct {
	AppointmentID    int64
	PaymentID        string
	Status           string // completed / failed
	TransactionID    *string
	AlreadyProcessed bool
}
