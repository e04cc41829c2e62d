package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

type mockDoctorRepo struct{ mock.Mock }

func (m *mockDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Doctor), args.Error(1)
}

type mockScheduleRepo struct{ mock.Mock }

func (m *mockScheduleRepo) ListByDoctorAndWeekday(ctx context.Context, doctorID int64, weekday domain.Weekday) ([]domain.RecurringSlot, error) {
	args := m.Called(ctx, doctorID, weekday)
	return args.Get(0).([]domain.RecurringSlot), args.Error(1)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) ListOccupiedTimes(ctx context.Context, doctorID int64, date time.Time) ([]types.TimeString, error) {
	args := m.Called(ctx, doctorID, date)
	return args.Get(0).([]types.TimeString), args.Error(1)
}

// 2025-10-15 - среда
var wednesday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func slot(start, end string, available bool) domain.RecurringSlot {
	return domain.RecurringSlot{
		DoctorID:    1,
		Weekday:     domain.Wednesday,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsAvailable: available,
	}
}

func newUseCase(slots []domain.RecurringSlot, occupied []types.TimeString) (*UseCase, *mockAppointmentRepo) {
	doctors := &mockDoctorRepo{}
	doctors.On("GetByID", mock.Anything, int64(1)).Return(&domain.Doctor{ID: 1, Name: "House"}, nil)

	schedule := &mockScheduleRepo{}
	schedule.On("ListByDoctorAndWeekday", mock.Anything, int64(1), domain.Wednesday).Return(slots, nil)

	appointments := &mockAppointmentRepo{}
	appointments.On("ListOccupiedTimes", mock.Anything, int64(1), wednesday).Return(occupied, nil)

	return NewUseCase(doctors, schedule, appointments, logger.Nop()), appointments
}

func times(slots []domain.AvailableSlot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.Time.String()
	}
	return result
}

// Сценарий A: 09:00, 09:30, 10:00; занято 09:30
func TestExecute_ExcludesOccupied(t *testing.T) {
	uc, _ := newUseCase(
		[]domain.RecurringSlot{slot("09:00", "09:30", true), slot("09:30", "10:00", true), slot("10:00", "10:30", true)},
		[]types.TimeString{"09:30"},
	)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: wednesday})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, times(resp.Slots))
}

func TestExecute_SizeIdentity(t *testing.T) {
	slots := []domain.RecurringSlot{
		slot("11:00", "11:30", true),
		slot("09:00", "09:30", true),
		slot("10:00", "10:30", true),
		slot("12:00", "12:30", false),
	}
	occupied := []types.TimeString{"10:00", "15:00"}
	uc, _ := newUseCase(slots, occupied)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: wednesday})

	require.NoError(t, err)
	// 3 доступных слота, 1 из них занят; 15:00 не входит в расписание
	assert.Len(t, resp.Slots, 2)
	assert.Equal(t, []string{"09:00", "11:00"}, times(resp.Slots))
	assert.Equal(t, "09:00 AM", resp.Slots[0].Display())
}

func TestExecute_DeduplicatesStartTimes(t *testing.T) {
	uc, _ := newUseCase(
		[]domain.RecurringSlot{slot("09:00", "09:30", true), slot("09:00", "10:00", true)},
		[]types.TimeString{},
	)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: wednesday})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, times(resp.Slots))
}

func TestExecute_NoSlots(t *testing.T) {
	uc, appointments := newUseCase([]domain.RecurringSlot{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: wednesday})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	appointments.AssertNotCalled(t, "ListOccupiedTimes", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	doctors := &mockDoctorRepo{}
	doctors.On("GetByID", mock.Anything, int64(9)).Return(nil, doctorRepo.ErrDoctorNotFound)
	uc := NewUseCase(doctors, &mockScheduleRepo{}, &mockAppointmentRepo{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 9, Date: wednesday})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_ScheduleError(t *testing.T) {
	doctors := &mockDoctorRepo{}
	doctors.On("GetByID", mock.Anything, int64(1)).Return(&domain.Doctor{ID: 1}, nil)
	schedule := &mockScheduleRepo{}
	schedule.On("ListByDoctorAndWeekday", mock.Anything, int64(1), domain.Wednesday).
		Return([]domain.RecurringSlot(nil), errors.New("db down"))
	uc := NewUseCase(doctors, schedule, &mockAppointmentRepo{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: wednesday})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&mockDoctorRepo{}, &mockScheduleRepo{}, &mockAppointmentRepo{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 1})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
