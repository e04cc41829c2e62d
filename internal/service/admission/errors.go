package admission

import "errors"

var (
	// ErrDateInPast возвращается при записи на прошедшую дату
	ErrDateInPast = errors.New("admission: appointment date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта записи
	ErrDateTooFarInFuture = errors.New("admission: appointment date is too far in the future")

	// ErrDoctorUnavailable возвращается, когда врач не принимает записи
	ErrDoctorUnavailable = errors.New("admission: doctor is not available for appointments")

	// ErrInvalidTime возвращается при некорректном времени приёма
	ErrInvalidTime = errors.New("admission: invalid appointment time")

	// ErrInternal возвращается при внутренних ошибках контроллера
	ErrInternal = errors.New("admission: internal error")
)
