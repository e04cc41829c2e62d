package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/appointments/models"
)

const eventSource = "doctor"

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	doctorRepo      DoctorRepository
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Доступна пациенту записи, её врачу и персоналу
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actor.UserID)

	appointment, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !actor.IsPatientOf(appointment) {
		if err := s.checkDoctorAccess(ctx, appointment.DoctorID, actor); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actor.UserID, id)
			return nil, err
		}
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListForPatient получает записи пациента, разложенные на upcoming/overdue/history
// Опционально фильтрует по статусу
func (s *Service) ListForPatient(ctx context.Context, req *models.ListPatientAppointmentsRequest) (*models.PatientAppointmentsResponse, error) {
	s.logger.Info("ListForPatient: fetching appointments for patient=%d, status=%v", req.PatientID, req.Status)

	filter := domain.PatientAppointmentsFilter{PatientID: req.PatientID}
	if req.Status != nil {
		status, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListForPatient: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.appointmentRepo.GetByPatient(ctx, filter)
	if err != nil {
		s.logger.Error("ListForPatient: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: ListForPatient - repository error: %v", ErrInternal, err)
	}

	resp := models.PartitionPatientAppointments(list, s.timeProvider.Now())

	s.logger.Info("ListForPatient: patient=%d, upcoming=%d, overdue=%d, history=%d",
		req.PatientID, len(resp.Upcoming), len(resp.Overdue), len(resp.History))
	return resp, nil
}

// Cancel отменяет живую запись; место и часовое окно освобождаются сразу
// Пациент может отменить свою запись, врач и персонал - любую запись врача
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, actor.UserID)

	appointment, err := s.get(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !actor.IsPatientOf(appointment) {
		if err := s.checkDoctorAccess(ctx, appointment.DoctorID, actor); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", actor.UserID, id)
			return err
		}
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.updateStatus(ctx, "Cancel", id, domain.TransitionCancel, ErrCannotCancel); err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// Confirm подтверждает запись pending; доступно врачу и персоналу
// Публикует appointment.confirmed
func (s *Service) Confirm(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Confirm: confirming appointment id=%d by user=%d", id, actor.UserID)

	appointment, err := s.get(ctx, "Confirm", id)
	if err != nil {
		return err
	}

	if err := s.checkDoctorAccess(ctx, appointment.DoctorID, actor); err != nil {
		s.logger.Warn("Confirm: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return err
	}

	if !appointment.CanBeConfirmed() {
		s.logger.Warn("Confirm: appointment id=%d has status=%s", id, appointment.Status)
		return ErrCannotConfirm
	}

	if err := s.updateStatus(ctx, "Confirm", id, domain.TransitionConfirm, ErrCannotConfirm); err != nil {
		return err
	}

	event := events.NewAppointmentConfirmed(appointment.ID, appointment.DoctorID, appointment.PatientID, eventSource)
	if err := s.publisher.PublishAppointmentConfirmed(ctx, event); err != nil {
		s.logger.Warn("Confirm: failed to publish confirmation for appointment id=%d: %v", id, err)
	}

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", id)
	return nil
}

// Complete отмечает подтверждённый приём как состоявшийся; доступно врачу и персоналу
func (s *Service) Complete(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", id, actor.UserID)

	appointment, err := s.get(ctx, "Complete", id)
	if err != nil {
		return err
	}

	if err := s.checkDoctorAccess(ctx, appointment.DoctorID, actor); err != nil {
		s.logger.Warn("Complete: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return err
	}

	if !appointment.CanBeCompleted() {
		s.logger.Warn("Complete: appointment id=%d has status=%s", id, appointment.Status)
		return ErrCannotComplete
	}

	if err := s.updateStatus(ctx, "Complete", id, domain.TransitionComplete, ErrCannotComplete); err != nil {
		return err
	}

	s.logger.Info("Complete: successfully completed appointment id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// updateStatus выполняет переход; если статус успели изменить параллельно, возвращает conflictErr
func (s *Service) updateStatus(ctx context.Context, op string, id int64, transition domain.StatusTransition, conflictErr error) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, id, transition); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found during update", op, id)
			return ErrAppointmentNotFound
		}
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("%s: appointment id=%d changed concurrently: %v", op, id, err)
			return conflictErr
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

// checkDoctorAccess проверяет, что пользователь - врач записи или персонал
func (s *Service) checkDoctorAccess(ctx context.Context, doctorID int64, actor domain.Actor) error {
	if actor.IsStaff {
		return nil
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		s.logger.Error("checkDoctorAccess: failed to get doctor id=%d: %v", doctorID, err)
		return fmt.Errorf("%w: checkDoctorAccess - failed to get doctor: %v", ErrInternal, err)
	}

	if !actor.CanActForDoctor(doctor) {
		return ErrAccessDenied
	}
	return nil
}
