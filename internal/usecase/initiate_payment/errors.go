package initiate_payment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("initiate_payment: appointment not found")

	// ErrAccessDenied возвращается, когда оплачивает не пациент записи
	ErrAccessDenied = errors.New("initiate_payment: access denied")

	// ErrAlreadyPaid возвращается для уже оплаченной записи
	ErrAlreadyPaid = errors.New("initiate_payment: appointment is already paid")

	// ErrCannotPay возвращается для завершённых и отменённых записей
	ErrCannotPay = errors.New("initiate_payment: appointment cannot be paid")

	// ErrGateway возвращается, когда платёжный шлюз не создал платёж
	ErrGateway = errors.New("initiate_payment: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initiate_payment: internal error")
)
