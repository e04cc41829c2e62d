package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/txmanager"
)

// maxAttempts первая попытка и один повтор при взаимоблокировке
const maxAttempts = 2

// UseCase use case для записи пациента к врачу
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

// Execute выполняет use case записи.
// Блокировка часового окна, проверка лимита и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, doctor=%d, date=%s, time=%s",
		req.PatientID, req.DoctorID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем врача
	doctor, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 3. Условия записи: дата, горизонт, доступность врача
	if err := uc.admission.CheckPreconditions(doctor, req.Date, req.Time, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: preconditions failed: %v", err)
		return nil, err
	}

	window := domain.NewHourWindow(req.Time)
	var result *domain.Appointment

	// 4. Допуск и запись в журнал в READ COMMITTED: после блокировки окна каждый
	// запрос видит уже зафиксированные записи конкурентов; взаимоблокировка повторяется один раз
	err = txmanager.Retry(maxAttempts, func(attempt int) error {
		if attempt > 1 {
			uc.logger.Warn("CreateAppointment: transaction conflict, retrying doctor=%d, window=%s", doctor.ID, window)
		}

		return uc.txManager.Do(ctx, func(txCtx context.Context) error {
			// 4.1. Сериализуем конкурентные записи на одно окно
			if err := uc.appointmentRepo.LockHourWindow(txCtx, doctor.ID, req.Date, window); err != nil {
				return fmt.Errorf("%w: failed to lock hour window: %w", ErrInternal, err)
			}

			// 4.2. Проверяем почасовой лимит
			if err := uc.admission.Admit(txCtx, doctor, req.Date, req.Time, nil); err != nil {
				return err
			}

			// 4.3. Создаем запись со статусом pending
			created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
				PatientID:     req.PatientID,
				DoctorID:      doctor.ID,
				Date:          req.Date,
				Time:          req.Time,
				Reason:        strings.TrimSpace(req.Reason),
				Symptoms:      req.Symptoms,
				Status:        domain.StatusPending,
				PaymentStatus: domain.PaymentPending,
				Amount:        doctor.ConsultationFee,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
			}

			result = created
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateAppointment: giving up after %d attempts doctor=%d, window=%s", maxAttempts, doctor.ID, window)
			return nil, fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		if errors.Is(err, domain.ErrCapacityExceeded) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:            result.ID,
		PatientID:     result.PatientID,
		DoctorID:      result.DoctorID,
		DoctorName:    doctor.Name,
		Date:          result.Date,
		Time:          result.Time,
		Reason:        result.Reason,
		Symptoms:      result.Symptoms,
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		Amount:        result.Amount,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
