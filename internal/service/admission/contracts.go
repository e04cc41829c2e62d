package admission

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
)

// AppointmentRepository счётчик живых записей в часовом окне
type AppointmentRepository interface {
	CountLive(ctx context.Context, doctorID int64, date time.Time, window domain.HourWindow, excludeID *int64) (int, error)
}

// DecisionRecorder учёт решений контроллера в метриках
type DecisionRecorder interface {
	RecordAdmission(decision string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
