package payment_callback

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж с таким ID шлюза не найден
	ErrPaymentNotFound = errors.New("payment_callback: payment not found")

	// ErrInvalidInput возвращается при некорректных параметрах callback
	ErrInvalidInput = errors.New("payment_callback: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("payment_callback: internal error")
)
