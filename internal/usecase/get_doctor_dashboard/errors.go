package get_doctor_dashboard

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("get_doctor_dashboard: doctor not found")

	// ErrAccessDenied возвращается, когда пользователь не врач и не персонал
	ErrAccessDenied = errors.New("get_doctor_dashboard: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_doctor_dashboard: internal error")
)
