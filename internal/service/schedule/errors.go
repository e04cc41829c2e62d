package schedule

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrSlotNotFound возвращается, когда слот не найден у этого врача
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrAccessDenied возвращается, когда пользователь не врач и не персонал
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrScheduleConflict возвращается при start >= end или дубликате (врач, день, начало)
	ErrScheduleConflict = errors.New("time slot conflicts with the existing schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
