package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
	scheduleRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/ptr"
)

const doctorUserID int64 = 7

type mockScheduleRepo struct{ mock.Mock }

func (m *mockScheduleRepo) ListByDoctor(ctx context.Context, doctorID int64) ([]domain.RecurringSlot, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringSlot), args.Error(1)
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.RecurringSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringSlot), args.Error(1)
}

func (m *mockScheduleRepo) Create(ctx context.Context, slot *domain.RecurringSlot) (*domain.RecurringSlot, error) {
	args := m.Called(ctx, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringSlot), args.Error(1)
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id int64) (*domain.RecurringSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringSlot), args.Error(1)
}

type stubDoctors struct{}

func (stubDoctors) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	if id != 1 {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return &domain.Doctor{ID: 1, UserID: ptr.Ptr(doctorUserID), Name: "House"}, nil
}

func TestListDoctorSlots(t *testing.T) {
	repo := &mockScheduleRepo{}
	repo.On("ListByDoctor", mock.Anything, int64(1)).Return([]domain.RecurringSlot{
		{ID: 3, DoctorID: 1, Weekday: domain.Monday, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
	}, nil)

	svc := NewService(repo, stubDoctors{}, logger.Nop())

	resp, err := svc.ListDoctorSlots(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)

	_, err = svc.ListDoctorSlots(context.Background(), 2)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAddSlot(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		req     models.AddSlotRequest
		repoErr error
		wantErr error
	}{
		{
			name:  "doctor adds own slot",
			actor: domain.Actor{UserID: doctorUserID},
			req:   models.AddSlotRequest{DoctorID: 1, Weekday: 0, StartTime: "09:00", EndTime: "12:00"},
		},
		{
			name:  "staff adds slot",
			actor: domain.Actor{UserID: 1, IsStaff: true},
			req:   models.AddSlotRequest{DoctorID: 1, Weekday: 6, StartTime: "18:00", EndTime: "23:59"},
		},
		{
			name:    "other user",
			actor:   domain.Actor{UserID: 99},
			req:     models.AddSlotRequest{DoctorID: 1, Weekday: 0, StartTime: "09:00", EndTime: "12:00"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "start after end",
			actor:   domain.Actor{UserID: doctorUserID},
			req:     models.AddSlotRequest{DoctorID: 1, Weekday: 0, StartTime: "12:00", EndTime: "09:00"},
			wantErr: ErrScheduleConflict,
		},
		{
			name:    "bad weekday",
			actor:   domain.Actor{UserID: doctorUserID},
			req:     models.AddSlotRequest{DoctorID: 1, Weekday: 9, StartTime: "09:00", EndTime: "12:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate start",
			actor:   domain.Actor{UserID: doctorUserID},
			req:     models.AddSlotRequest{DoctorID: 1, Weekday: 0, StartTime: "09:00", EndTime: "10:00"},
			repoErr: scheduleRepo.ErrDuplicateSlot,
			wantErr: ErrScheduleConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockScheduleRepo{}
			if tt.repoErr != nil {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, tt.repoErr)
			} else {
				created := tt.req.ToDomainSlot()
				created.ID = 10
				repo.On("Create", mock.Anything, mock.Anything).Return(created, nil).Maybe()
			}

			svc := NewService(repo, stubDoctors{}, logger.Nop())
			resp, err := svc.AddSlot(context.Background(), tt.actor, &tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(10), resp.ID)
			assert.True(t, resp.IsAvailable)
		})
	}
}

func TestRemoveSlot(t *testing.T) {
	slot := &domain.RecurringSlot{ID: 3, DoctorID: 1, Weekday: domain.Monday, StartTime: "09:00", EndTime: "12:00"}

	t.Run("doctor removes own slot", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		repo.On("GetByID", mock.Anything, int64(3)).Return(slot, nil)
		repo.On("Delete", mock.Anything, int64(3)).Return(slot, nil)

		svc := NewService(repo, stubDoctors{}, logger.Nop())
		require.NoError(t, svc.RemoveSlot(context.Background(), domain.Actor{UserID: doctorUserID}, 1, 3))
		repo.AssertExpectations(t)
	})

	t.Run("slot of other doctor", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		repo.On("GetByID", mock.Anything, int64(3)).Return(slot, nil)

		svc := NewService(repo, stubDoctors{}, logger.Nop())
		err := svc.RemoveSlot(context.Background(), domain.Actor{IsStaff: true}, 2, 3)
		assert.ErrorIs(t, err, ErrSlotNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("access denied", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		repo.On("GetByID", mock.Anything, int64(3)).Return(slot, nil)

		svc := NewService(repo, stubDoctors{}, logger.Nop())
		err := svc.RemoveSlot(context.Background(), domain.Actor{UserID: 99}, 1, 3)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing slot", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		repo.On("GetByID", mock.Anything, int64(4)).Return(nil, scheduleRepo.ErrSlotNotFound)

		svc := NewService(repo, stubDoctors{}, logger.Nop())
		err := svc.RemoveSlot(context.Background(), domain.Actor{IsStaff: true}, 1, 4)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}
