package get_doctor_dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
)

// UseCase use case дашборда врача: записи на сегодня и почасовая загрузка
type UseCase struct {
	doctorRepo      DoctorRepository
	appointmentRepo AppointmentRepository
	loadReporter    LoadReporter
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	appointmentRepo AppointmentRepository,
	loadReporter LoadReporter,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		loadReporter:    loadReporter,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDoctorDashboard: doctor=%d, user=%d", req.DoctorID, req.Actor.UserID)

	doctor, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetDoctorDashboard: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if !req.Actor.CanActForDoctor(doctor) {
		uc.logger.Warn("GetDoctorDashboard: access denied for user=%d to doctor id=%d", req.Actor.UserID, doctor.ID)
		return nil, ErrAccessDenied
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	// 1. Записи на сегодня, все статусы
	todays, err := uc.appointmentRepo.GetByDoctorWithFilter(ctx, domain.DoctorAppointmentsFilter{
		DoctorID:  doctor.ID,
		StartDate: &today,
		EndDate:   &today,
	})
	if err != nil {
		uc.logger.Error("GetDoctorDashboard: failed to get today's appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get today's appointments: %v", ErrInternal, err)
	}

	// 2. Будущие живые записи
	upcoming, err := uc.appointmentRepo.GetByDoctorWithFilter(ctx, domain.DoctorAppointmentsFilter{
		DoctorID:  doctor.ID,
		StartDate: &tomorrow,
		Statuses:  domain.LiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetDoctorDashboard: failed to get upcoming appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get upcoming appointments: %v", ErrInternal, err)
	}

	// 3. Завершённые приёмы за всё время
	completed, err := uc.appointmentRepo.GetByDoctorWithFilter(ctx, domain.DoctorAppointmentsFilter{
		DoctorID: doctor.ID,
		Statuses: []domain.AppointmentStatus{domain.StatusCompleted},
	})
	if err != nil {
		uc.logger.Error("GetDoctorDashboard: failed to get completed appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get completed appointments: %v", ErrInternal, err)
	}

	// 4. Почасовая загрузка сегодняшнего дня
	load, err := uc.loadReporter.HourlyLoad(ctx, doctor.ID, today)
	if err != nil {
		uc.logger.Error("GetDoctorDashboard: failed to get hourly load: %v", err)
		return nil, fmt.Errorf("%w: failed to get hourly load: %v", ErrInternal, err)
	}

	// Ближайшие сначала
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartsAt().Before(upcoming[j].StartsAt())
	})
	upcomingCount := len(upcoming)
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}

	uc.logger.Info("GetDoctorDashboard: doctor=%d, today=%d, upcoming=%d, completed=%d",
		doctor.ID, len(todays), upcomingCount, len(completed))

	return &Response{
		DoctorID:       doctor.ID,
		DoctorName:     doctor.Name,
		Date:           today,
		Today:          todays,
		Upcoming:       upcoming,
		UpcomingCount:  upcomingCount,
		CompletedCount: len(completed),
		HourlyLoad:     load,
	}, nil
}
