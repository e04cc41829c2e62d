package paymentgateway

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда шлюз не знает платёж
	ErrPaymentNotFound = errors.New("paymentgateway client: payment not found")

	// ErrPaymentDeclined возвращается, когда шлюз отказал в проведении платежа
	ErrPaymentDeclined = errors.New("paymentgateway client: payment declined")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
