package generate_meeting_link

import (
	"context"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/integrations/meetingservice"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	SetMeeting(ctx context.Context, id int64, meeting domain.Meeting) error
}

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// MeetingClient интерфейс клиента сервиса видеовстреч
type MeetingClient interface {
	CreateMeeting(ctx context.Context, req meetingservice.MeetingRequest) (*meetingservice.MeetingResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
