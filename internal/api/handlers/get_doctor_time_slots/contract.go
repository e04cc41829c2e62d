package get_doctor_time_slots

import (
	"context"

	"github.com/m04kA/SMC-DoctorBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListDoctorSlots(ctx context.Context, doctorID int64) (*models.DoctorSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
