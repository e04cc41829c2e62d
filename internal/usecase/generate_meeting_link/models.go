package generate_meeting_link

import "github.com/m04kA/SMC-DoctorBookingService/internal/domain"

// Request модель запроса на создание ссылки на встречу
type Request struct {
	AppointmentID int64
	Actor         *domain.Actor // nil для внутренних вызовов по событию
}

// Response модель ответа со ссылкой
type Response struct {
	AppointmentID int64
	MeetingID     string
	JoinURL       string
	StartURL      string
	Password      string
	Created       bool // false, если ссылка уже существовала
}
