package manage_doctor_time_slots

import (
	"context"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	AddSlot(ctx context.Context, actor domain.Actor, req *models.AddSlotRequest) (*models.SlotResponse, error)
	RemoveSlot(ctx context.Context, actor domain.Actor, doctorID, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
