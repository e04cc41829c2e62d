package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListByDoctorAndWeekday(ctx context.Context, doctorID int64, weekday domain.Weekday) ([]domain.RecurringSlot, error) {
	args := m.Called(ctx, doctorID, weekday)
	slots, _ := args.Get(0).([]domain.RecurringSlot)
	return slots, args.Error(1)
}

func (m *mockStore) ListByDoctor(ctx context.Context, doctorID int64) ([]domain.RecurringSlot, error) {
	args := m.Called(ctx, doctorID)
	slots, _ := args.Get(0).([]domain.RecurringSlot)
	return slots, args.Error(1)
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (*domain.RecurringSlot, error) {
	args := m.Called(ctx, id)
	slot, _ := args.Get(0).(*domain.RecurringSlot)
	return slot, args.Error(1)
}

func (m *mockStore) Create(ctx context.Context, slot *domain.RecurringSlot) (*domain.RecurringSlot, error) {
	args := m.Called(ctx, slot)
	created, _ := args.Get(0).(*domain.RecurringSlot)
	return created, args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, id int64) (*domain.RecurringSlot, error) {
	args := m.Called(ctx, id)
	deleted, _ := args.Get(0).(*domain.RecurringSlot)
	return deleted, args.Error(1)
}

type countingMetrics struct {
	hits, misses int
}

func (c *countingMetrics) RecordCacheLookup(hit bool) {
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	store := new(mockStore)
	metrics := &countingMetrics{}
	ctx := context.Background()

	slots := []domain.RecurringSlot{{ID: 1, DoctorID: 3, Weekday: domain.Monday, StartTime: "09:00", EndTime: "10:00", IsAvailable: true}}
	store.On("ListByDoctorAndWeekday", ctx, int64(3), domain.Monday).Return(slots, nil).Once()

	cached, err := NewCachedRepository(store, 16, metrics, logger.Nop())
	require.NoError(t, err)

	first, err := cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)
	second, err := cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
	store.AssertExpectations(t)
}

func TestCachedRepository_InvalidatesOnCreateAndDelete(t *testing.T) {
	store := new(mockStore)
	ctx := context.Background()

	monday := []domain.RecurringSlot{{ID: 1, DoctorID: 3, Weekday: domain.Monday, StartTime: "09:00", EndTime: "10:00"}}
	newSlot := &domain.RecurringSlot{DoctorID: 3, Weekday: domain.Monday, StartTime: "10:00", EndTime: "11:00"}
	created := &domain.RecurringSlot{ID: 2, DoctorID: 3, Weekday: domain.Monday, StartTime: "10:00", EndTime: "11:00"}

	store.On("ListByDoctorAndWeekday", ctx, int64(3), domain.Monday).Return(monday, nil).Times(3)
	store.On("Create", ctx, newSlot).Return(created, nil).Once()
	store.On("Delete", ctx, int64(2)).Return(created, nil).Once()

	cached, err := NewCachedRepository(store, 16, nil, logger.Nop())
	require.NoError(t, err)

	_, err = cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Len())

	_, err = cached.Create(ctx, newSlot)
	require.NoError(t, err)
	assert.Equal(t, 0, cached.Len())

	_, err = cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)

	_, err = cached.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, cached.Len())

	_, err = cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)

	store.AssertExpectations(t)
}

func TestCachedRepository_ReturnsCopies(t *testing.T) {
	store := new(mockStore)
	ctx := context.Background()

	store.On("ListByDoctorAndWeekday", ctx, int64(3), domain.Monday).
		Return([]domain.RecurringSlot{{ID: 1, StartTime: "09:00"}}, nil).Once()

	cached, err := NewCachedRepository(store, 4, nil, logger.Nop())
	require.NoError(t, err)

	_, err = cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)

	hit, err := cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)
	hit[0].StartTime = "12:00"

	again, err := cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, "09:00", again[0].StartTime.String())
}

func TestNewCachedRepository_InvalidSize(t *testing.T) {
	_, err := NewCachedRepository(new(mockStore), 0, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidCacheSize)
}

func TestCachedRepository_InvalidationDuringReadIsNotCached(t *testing.T) {
	store := new(mockStore)
	ctx := context.Background()

	stale := []domain.RecurringSlot{{ID: 1, DoctorID: 3, Weekday: domain.Monday, StartTime: "09:00", EndTime: "10:00", IsAvailable: true}}
	added := domain.RecurringSlot{ID: 2, DoctorID: 3, Weekday: domain.Monday, StartTime: "10:00", EndTime: "11:00", IsAvailable: true}
	fresh := append(append([]domain.RecurringSlot(nil), stale...), added)

	cached, err := NewCachedRepository(store, 16, nil, logger.Nop())
	require.NoError(t, err)

	store.On("Create", ctx, &added).Return(&added, nil).Once()
	// Слот добавляют, пока первое чтение ещё идёт
	store.On("ListByDoctorAndWeekday", ctx, int64(3), domain.Monday).
		Run(func(mock.Arguments) {
			_, createErr := cached.Create(ctx, &added)
			require.NoError(t, createErr)
		}).
		Return(stale, nil).Once()
	store.On("ListByDoctorAndWeekday", ctx, int64(3), domain.Monday).Return(fresh, nil).Once()

	first, err := cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 0, cached.Len())

	second, err := cached.ListByDoctorAndWeekday(ctx, 3, domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, fresh, second)
	assert.Equal(t, 1, cached.Len())
	store.AssertExpectations(t)
}
