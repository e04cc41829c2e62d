package get_doctor_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
)

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	GetByDoctorWithFilter(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error)
}

// LoadReporter почасовая загрузка врача
type LoadReporter interface {
	HourlyLoad(ctx context.Context, doctorID int64, date time.Time) ([]domain.HourLoad, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
