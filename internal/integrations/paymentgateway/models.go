package paymentgateway

// StatusCompleted статус успешно проведённого платежа
const StatusCompleted = "Completed"

// createPaymentRequest тело запроса на создание платежа
type createPaymentRequest struct {
	Amount                string `json:"amount"`
	Currency              string `json:"currency"`
	Intent                string `json:"intent"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber"`
	CallbackURL           string `json:"callbackURL"`
}

// CreatePaymentResponse ответ шлюза на создание платежа
type CreatePaymentResponse struct {
	PaymentID   string `json:"paymentID"`
	RedirectURL string `json:"bkashURL"`
	Status      string `json:"transactionStatus"`
}

// ExecutePaymentResponse ответ шлюза на проведение платежа
type ExecutePaymentResponse struct {
	PaymentID     string `json:"paymentID"`
	TransactionID string `json:"trxID"`
	Status        string `json:"transactionStatus"`
	Amount        string `json:"amount"`
}

// IsCompleted returns true if the gateway settled the payment
func (r *ExecutePaymentResponse) IsCompleted() bool {
	return r.Status == StatusCompleted
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    string `json:"statusCode"`
	Message string `json:"statusMessage"`
}
