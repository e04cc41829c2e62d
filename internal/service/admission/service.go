package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

const (
	DecisionAdmitted = "admitted"
	DecisionRejected = "rejected"
)

// Service контроллер почасового допуска записей
type Service struct {
	appointmentRepo AppointmentRepository
	policy          domain.AdmissionPolicy
	metrics         DecisionRecorder
	logger          Logger
}

// NewService создает контроллер; metrics может быть nil
func NewService(appointmentRepo AppointmentRepository, policy domain.AdmissionPolicy, metrics DecisionRecorder, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		policy:          policy,
		metrics:         metrics,
		logger:          logger,
	}
}

// Policy возвращает действующую политику
func (s *Service) Policy() domain.AdmissionPolicy {
	return s.policy
}

// Admit проверяет, есть ли у врача место в часе, содержащем t.
// Должен вызываться в той же транзакции, что и запись в журнал, после блокировки окна.
// При отказе возвращает *domain.CapacityExceededError
func (s *Service) Admit(ctx context.Context, doctor *domain.Doctor, date time.Time, t types.TimeString, excludeID *int64) error {
	window := domain.NewHourWindow(t)

	count, err := s.appointmentRepo.CountLive(ctx, doctor.ID, date, window, excludeID)
	if err != nil {
		s.logger.Error("Admit: failed to count live appointments doctor=%d, date=%s, window=%s: %v",
			doctor.ID, date.Format(domain.DateFormat), window, err)
		return fmt.Errorf("%w: count live appointments: %w", ErrInternal, err)
	}

	if s.policy.IsFull(count) {
		s.record(DecisionRejected)
		s.logger.Warn("Admit: rejected doctor=%d, date=%s, window=%s, %d/%d booked",
			doctor.ID, date.Format(domain.DateFormat), window, count, s.policy.HourlyCapacity)
		return &domain.CapacityExceededError{
			DoctorName: doctor.Name,
			Window:     window,
			Capacity:   s.policy.HourlyCapacity,
		}
	}

	s.record(DecisionAdmitted)
	s.logger.Info("Admit: admitted doctor=%d, date=%s, window=%s, %d/%d booked",
		doctor.ID, date.Format(domain.DateFormat), window, count, s.policy.HourlyCapacity)
	return nil
}

// HourlyLoad возвращает загрузку каждого часа [DashboardStartHour, DashboardEndHour)
func (s *Service) HourlyLoad(ctx context.Context, doctorID int64, date time.Time) ([]domain.HourLoad, error) {
	loads := make([]domain.HourLoad, 0, s.policy.DashboardEndHour-s.policy.DashboardStartHour)

	for hour := s.policy.DashboardStartHour; hour < s.policy.DashboardEndHour; hour++ {
		window := domain.HourWindowAt(hour)

		count, err := s.appointmentRepo.CountLive(ctx, doctorID, date, window, nil)
		if err != nil {
			s.logger.Error("HourlyLoad: failed to count doctor=%d, window=%s: %v", doctorID, window, err)
			return nil, fmt.Errorf("%w: count live appointments: %w", ErrInternal, err)
		}

		loads = append(loads, domain.HourLoad{
			Window:       window,
			Count:        count,
			Capacity:     s.policy.HourlyCapacity,
			Label:        s.policy.LoadLabel(count),
			IsFull:       s.policy.IsFull(count),
			IsAlmostFull: s.policy.IsAlmostFull(count),
		})
	}

	return loads, nil
}

func (s *Service) record(decision string) {
	if s.metrics != nil {
		s.metrics.RecordAdmission(decision)
	}
}
