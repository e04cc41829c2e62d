package get_doctor_dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/admission"
	"github.com/m04kA/SMC-DoctorBookingService/internal/testutil"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/ptr"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

type stubDoctors map[int64]*domain.Doctor

func (s stubDoctors) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	d, ok := s[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return d, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	now     = time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	today   = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	doctors = stubDoctors{1: {ID: 1, UserID: ptr.Ptr(int64(500)), Name: "House"}}
)

func newUseCase(ledger *testutil.MemoryLedger) *UseCase {
	adm := admission.NewService(ledger, domain.DefaultAdmissionPolicy(), nil, logger.Nop())
	uc := NewUseCase(doctors, ledger, adm, logger.Nop())
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	for i := 0; i < 16; i++ {
		ledger.Seed(domain.Appointment{DoctorID: 1, Date: today, Time: types.TimeString(fmt.Sprintf("10:%02d", i)), Status: domain.StatusPending})
	}
	ledger.Seed(domain.Appointment{DoctorID: 1, Date: today, Time: "09:00", Status: domain.StatusCancelled})
	ledger.Seed(domain.Appointment{DoctorID: 1, Date: today.AddDate(0, 0, -3), Time: "11:00", Status: domain.StatusCompleted})
	for d := 1; d <= 12; d++ {
		ledger.Seed(domain.Appointment{DoctorID: 1, Date: today.AddDate(0, 0, d), Time: "12:00", Status: domain.StatusConfirmed})
	}
	ledger.Seed(domain.Appointment{DoctorID: 2, Date: today, Time: "10:00", Status: domain.StatusPending})

	resp, err := newUseCase(ledger).Execute(context.Background(), &Request{DoctorID: 1, Actor: domain.Actor{UserID: 500}})

	require.NoError(t, err)
	assert.Len(t, resp.Today, 17)
	assert.Equal(t, "09:00", resp.Today[0].Time.String())
	assert.Equal(t, 12, resp.UpcomingCount)
	require.Len(t, resp.Upcoming, 10)
	assert.True(t, resp.Upcoming[0].Date.Equal(today.AddDate(0, 0, 1)))
	assert.Equal(t, 1, resp.CompletedCount)

	require.Len(t, resp.HourlyLoad, 12)
	assert.Equal(t, "Available", resp.HourlyLoad[1].Label)
	assert.Equal(t, "Almost Full (16/20)", resp.HourlyLoad[2].Label)
}

func TestExecute_AccessDenied(t *testing.T) {
	_, err := newUseCase(testutil.NewMemoryLedger()).Execute(context.Background(), &Request{DoctorID: 1, Actor: domain.Actor{UserID: 7}})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_StaffAllowed(t *testing.T) {
	_, err := newUseCase(testutil.NewMemoryLedger()).Execute(context.Background(), &Request{DoctorID: 1, Actor: domain.Actor{UserID: 7, IsStaff: true}})

	assert.NoError(t, err)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	_, err := newUseCase(testutil.NewMemoryLedger()).Execute(context.Background(), &Request{DoctorID: 9, Actor: domain.Actor{IsStaff: true}})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
