package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/txmanager"
)

const maxAttempts = 2

// UseCase use case для переноса записи на другое время
type UseCase struct {
	doctorRepo      DoctorRepository
	appointmentRepo AppointmentRepository
	admission       AdmissionController
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	appointmentRepo AppointmentRepository,
	admission AdmissionController,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		admission:       admission,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит живую запись. Сама запись не учитывается в лимите нового окна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, date=%s, time=%s",
		req.AppointmentID, req.Actor.UserID, req.Date.Format(domain.DateFormat), req.Time)

	if req.AppointmentID <= 0 || req.Date.IsZero() || req.Time.IsZero() {
		return nil, fmt.Errorf("%w: appointmentID, date and time are required", ErrInvalidInput)
	}

	// 1. Получаем запись и врача
	current, err := uc.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.doctorRepo.GetByID(ctx, current.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get doctor id=%d: %v", current.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 2. Права: пациент записи, врач или персонал
	if !req.Actor.IsPatientOf(current) && !req.Actor.CanActForDoctor(doctor) {
		uc.logger.Warn("RescheduleAppointment: access denied for user=%d to appointment id=%d", req.Actor.UserID, current.ID)
		return nil, ErrAccessDenied
	}

	if !current.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d has status=%s", current.ID, current.Status)
		return nil, ErrCannotReschedule
	}

	// 3. Условия записи на новое время
	if err := uc.admission.CheckPreconditions(doctor, req.Date, req.Time, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RescheduleAppointment: preconditions failed: %v", err)
		return nil, err
	}

	window := domain.NewHourWindow(req.Time)

	// 4. Допуск с исключением самой записи и обновление журнала
	err = txmanager.Retry(maxAttempts, func(attempt int) error {
		if attempt > 1 {
			uc.logger.Warn("RescheduleAppointment: transaction conflict, retrying appointment=%d", current.ID)
		}

		return uc.txManager.Do(ctx, func(txCtx context.Context) error {
			if err := uc.appointmentRepo.LockHourWindow(txCtx, doctor.ID, req.Date, window); err != nil {
				return fmt.Errorf("%w: failed to lock hour window: %w", ErrInternal, err)
			}

			// Статус мог измениться до блокировки
			fresh, err := uc.getAppointment(txCtx, current.ID)
			if err != nil {
				return err
			}
			if !fresh.CanBeRescheduled() {
				return ErrCannotReschedule
			}

			if err := uc.admission.Admit(txCtx, doctor, req.Date, req.Time, &fresh.ID); err != nil {
				return err
			}

			if err := uc.appointmentRepo.Reschedule(txCtx, fresh.ID, req.Date, req.Time); err != nil {
				if errors.Is(err, appointmentRepo.ErrStatusConflict) {
					return ErrCannotReschedule
				}
				return fmt.Errorf("%w: failed to reschedule: %w", ErrInternal, err)
			}
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved from %s %s to %s %s",
		current.ID, current.Date.Format(domain.DateFormat), current.Time, req.Date.Format(domain.DateFormat), req.Time)

	return &Response{
		ID:           current.ID,
		DoctorID:     current.DoctorID,
		PreviousDate: current.Date,
		PreviousTime: current.Time,
		Date:         req.Date,
		Time:         req.Time,
		Status:       string(current.Status),
	}, nil
}

func (uc *UseCase) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}
	return appointment, nil
}
