package schedule

import (
	"context"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Store операции хранилища расписаний, которые оборачивает кэш
type Store interface {
	ListByDoctorAndWeekday(ctx context.Context, doctorID int64, weekday domain.Weekday) ([]domain.RecurringSlot, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]domain.RecurringSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.RecurringSlot, error)
	Create(ctx context.Context, slot *domain.RecurringSlot) (*domain.RecurringSlot, error)
	Delete(ctx context.Context, id int64) (*domain.RecurringSlot, error)
}

// CacheMetrics учёт попаданий в кэш
type CacheMetrics interface {
	RecordCacheLookup(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
}
