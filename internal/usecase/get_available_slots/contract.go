package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// ScheduleRepository интерфейс хранилища регулярного расписания
type ScheduleRepository interface {
	ListByDoctorAndWeekday(ctx context.Context, doctorID int64, weekday domain.Weekday) ([]domain.RecurringSlot, error)
}

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	// ListOccupiedTimes времена начала живых записей врача на дату
	ListOccupiedTimes(ctx context.Context, doctorID int64, date time.Time) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
