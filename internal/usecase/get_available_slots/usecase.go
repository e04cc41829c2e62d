package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
)

// UseCase use case для получения свободных времён приёма врача на дату
type UseCase struct {
	doctorRepo      DoctorRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:      doctorRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов; только чтение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.DoctorID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: doctorID and date are required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s", req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Проверяем существование врача
	if _, err := uc.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 2. Регулярные слоты на день недели
	weekday := domain.WeekdayOf(req.Date)
	slots, err := uc.scheduleRepo.ListByDoctorAndWeekday(ctx, req.DoctorID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots doctor=%d, weekday=%d: %v", req.DoctorID, weekday, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	response := &Response{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Slots:    []domain.AvailableSlot{},
	}

	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: doctor=%d has no slots on weekday=%d", req.DoctorID, weekday)
		return response, nil
	}

	// 3. Занятые времена
	occupied, err := uc.appointmentRepo.ListOccupiedTimes(ctx, req.DoctorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list occupied times doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to list occupied times: %v", ErrInternal, err)
	}

	response.Slots = freeStartTimes(slots, occupied)

	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s, %d free of %d slots",
		req.DoctorID, req.Date.Format(domain.DateFormat), len(response.Slots), len(slots))

	return response, nil
}
