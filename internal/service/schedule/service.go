package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
	scheduleRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/schedule/models"
)

// Service сервис для работы с расписанием врачей
type Service struct {
	scheduleRepo ScheduleRepository
	doctorRepo   DoctorRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	doctorRepo DoctorRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		logger:       logger,
	}
}

// ListDoctorSlots получает все окна приёма врача
func (s *Service) ListDoctorSlots(ctx context.Context, doctorID int64) (*models.DoctorSlotsResponse, error) {
	s.logger.Info("ListDoctorSlots: fetching schedule for doctor=%d", doctorID)

	if _, err := s.getDoctor(ctx, "ListDoctorSlots", doctorID); err != nil {
		return nil, err
	}

	slots, err := s.scheduleRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("ListDoctorSlots: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: ListDoctorSlots - repository error: %v", ErrInternal, err)
	}

	resp := &models.DoctorSlotsResponse{
		DoctorID: doctorID,
		Slots:    make([]models.SlotResponse, 0, len(slots)),
	}
	for i := range slots {
		resp.Slots = append(resp.Slots, *models.FromDomainSlot(&slots[i]))
	}

	return resp, nil
}

// AddSlot добавляет окно приёма
// Доступно врачу и персоналу
func (s *Service) AddSlot(ctx context.Context, actor domain.Actor, req *models.AddSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("AddSlot: adding slot for doctor=%d, weekday=%d, %s-%s by user=%d",
		req.DoctorID, req.Weekday, req.StartTime, req.EndTime, actor.UserID)

	slot := req.ToDomainSlot()
	if err := slot.Validate(); err != nil {
		s.logger.Warn("AddSlot: validation failed: %v", err)
		if errors.Is(err, domain.ErrScheduleConflict) {
			return nil, fmt.Errorf("%w: start time must be before end time", ErrScheduleConflict)
		}
		return nil, fmt.Errorf("%w: weekday must be 0..6 and times HH:MM", ErrInvalidInput)
	}

	if err := s.checkAccess(ctx, "AddSlot", req.DoctorID, actor); err != nil {
		return nil, err
	}

	created, err := s.scheduleRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateSlot) {
			s.logger.Warn("AddSlot: duplicate slot for doctor=%d, weekday=%d, start=%s", req.DoctorID, req.Weekday, req.StartTime)
			return nil, fmt.Errorf("%w: a slot starting at %s already exists", ErrScheduleConflict, req.StartTime)
		}
		s.logger.Error("AddSlot: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: AddSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddSlot: successfully added slot id=%d for doctor=%d", created.ID, created.DoctorID)
	return models.FromDomainSlot(created), nil
}

// RemoveSlot удаляет окно приёма врача
// Доступно врачу и персоналу; существующие записи не затрагиваются
func (s *Service) RemoveSlot(ctx context.Context, actor domain.Actor, doctorID, slotID int64) error {
	s.logger.Info("RemoveSlot: removing slot id=%d of doctor=%d by user=%d", slotID, doctorID, actor.UserID)

	slot, err := s.scheduleRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
			s.logger.Warn("RemoveSlot: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("RemoveSlot: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: RemoveSlot - repository error: %v", ErrInternal, err)
	}

	if slot.DoctorID != doctorID {
		s.logger.Warn("RemoveSlot: slot id=%d belongs to doctor=%d, not %d", slotID, slot.DoctorID, doctorID)
		return ErrSlotNotFound
	}

	if err := s.checkAccess(ctx, "RemoveSlot", slot.DoctorID, actor); err != nil {
		return err
	}

	if _, err := s.scheduleRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("RemoveSlot: failed to delete slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: RemoveSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveSlot: successfully removed slot id=%d", slotID)
	return nil
}

// Вспомогательные методы

func (s *Service) getDoctor(ctx context.Context, op string, doctorID int64) (*domain.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("%s: doctor id=%d not found", op, doctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("%s: failed to get doctor id=%d: %v", op, doctorID, err)
		return nil, fmt.Errorf("%w: %s - failed to get doctor: %v", ErrInternal, op, err)
	}
	return doctor, nil
}

func (s *Service) checkAccess(ctx context.Context, op string, doctorID int64, actor domain.Actor) error {
	doctor, err := s.getDoctor(ctx, op, doctorID)
	if err != nil {
		return err
	}
	if !actor.CanActForDoctor(doctor) {
		s.logger.Warn("%s: user=%d cannot manage schedule of doctor=%d", op, actor.UserID, doctorID)
		return ErrAccessDenied
	}
	return nil
}
