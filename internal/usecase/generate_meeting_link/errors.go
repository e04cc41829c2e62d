package generate_meeting_link

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("generate_meeting_link: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не участник приёма
	ErrAccessDenied = errors.New("generate_meeting_link: access denied")

	// ErrNotPaid возвращается для неоплаченной записи
	ErrNotPaid = errors.New("generate_meeting_link: appointment is not paid")

	// ErrMeetingService возвращается, когда сервис встреч не создал встречу
	ErrMeetingService = errors.New("generate_meeting_link: meeting service error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_meeting_link: internal error")
)
