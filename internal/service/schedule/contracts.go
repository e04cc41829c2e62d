package schedule

import (
	"context"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
)

// ScheduleRepository интерфейс хранилища расписаний
type ScheduleRepository interface {
	ListByDoctor(ctx context.Context, doctorID int64) ([]domain.RecurringSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.RecurringSlot, error)
	Create(ctx context.Context, slot *domain.RecurringSlot) (*domain.RecurringSlot, error)
	Delete(ctx context.Context, id int64) (*domain.RecurringSlot, error)
}

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
