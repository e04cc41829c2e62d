package update_appointment_status

import (
	"context"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
)

type AppointmentService interface {
	Cancel(ctx context.Context, id int64, actor domain.Actor) error
	Confirm(ctx context.Context, id int64, actor domain.Actor) error
	Complete(ctx context.Context, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
