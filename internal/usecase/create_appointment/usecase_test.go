package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/admission"
	"github.com/m04kA/SMC-DoctorBookingService/internal/testutil"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
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
	now       = time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC)
	visitDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	doctors   = stubDoctors{
		1: {ID: 1, Name: "House", ConsultationFee: 500, IsAvailable: true},
		2: {ID: 2, Name: "Wilson", IsAvailable: false},
	}
)

type fixture struct {
	uc     *UseCase
	ledger *testutil.MemoryLedger
	tx     *testutil.SerialTxManager
}

func newFixture() *fixture {
	ledger := testutil.NewMemoryLedger()
	tx := &testutil.SerialTxManager{}
	adm := admission.NewService(ledger, domain.DefaultAdmissionPolicy(), nil, logger.Nop())
	uc := NewUseCase(doctors, ledger, adm, tx, logger.Nop())
	uc.timeProvider = fixedClock{now: now}
	return &fixture{uc: uc, ledger: ledger, tx: tx}
}

func request(t types.TimeString) *Request {
	return &Request{PatientID: 42, DoctorID: 1, Date: visitDate, Time: t, Reason: "checkup"}
}

func seedLive(l *testutil.MemoryLedger, n int, t types.TimeString) {
	for i := 0; i < n; i++ {
		l.Seed(domain.Appointment{PatientID: int64(100 + i), DoctorID: 1, Date: visitDate, Time: t, Status: domain.StatusConfirmed})
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("14:30"))

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 500.0, resp.Amount)
	assert.Equal(t, "House", resp.DoctorName)
	assert.Equal(t, []string{"appt:1:2025-10-15:14"}, f.ledger.Locks())
	// Снимок каждого запроса берётся после блокировки окна
	assert.Equal(t, []string{testutil.ReadCommitted}, f.tx.Isolations)
}

// Сценарий B: 19 живых записей в 14:00-15:00, запись на 14:45 проходит
func TestExecute_LastSeatInHour(t *testing.T) {
	f := newFixture()
	seedLive(f.ledger, 19, "14:00")

	_, err := f.uc.Execute(context.Background(), request("14:45"))

	require.NoError(t, err)
	assert.Equal(t, 20, f.ledger.Live(1, visitDate, domain.HourWindowAt(14)))
}

// Сценарий C: 20 живых записей, запись на 14:15 отклоняется с сообщением о часе
func TestExecute_FullHour(t *testing.T) {
	f := newFixture()
	seedLive(f.ledger, 20, "14:00")

	_, err := f.uc.Execute(context.Background(), request("14:15"))

	var capErr *domain.CapacityExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, "Dr. House already has 20 appointments booked between 02:00 PM - 03:00 PM. Please choose another time or try the next hour.", err.Error())
	assert.Equal(t, 20, f.ledger.Live(1, visitDate, domain.HourWindowAt(14)))
}

// Сценарий D: соседний час не влияет на лимит
func TestExecute_NextHourUnaffected(t *testing.T) {
	f := newFixture()
	seedLive(f.ledger, 20, "14:00")

	_, err := f.uc.Execute(context.Background(), request("15:00"))

	assert.NoError(t, err)
}

func TestExecute_CancelledDoNotCount(t *testing.T) {
	f := newFixture()
	seedLive(f.ledger, 19, "14:00")
	f.ledger.Seed(domain.Appointment{DoctorID: 1, Date: visitDate, Time: "14:10", Status: domain.StatusCancelled})
	f.ledger.Seed(domain.Appointment{DoctorID: 1, Date: visitDate, Time: "14:20", Status: domain.StatusCompleted})

	_, err := f.uc.Execute(context.Background(), request("14:50"))

	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsNeverExceedCapacity(t *testing.T) {
	f := newFixture()
	const requests = 35

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := request(types.TimeString(fmt.Sprintf("09:%02d", i)))
			req.PatientID = int64(1000 + i)

			_, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			case errors.Is(err, domain.ErrCapacityExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, admitted)
	assert.Equal(t, requests-20, rejected)
	assert.Equal(t, 20, f.ledger.Live(1, visitDate, domain.HourWindowAt(9)))
}

func TestExecute_RetriesTransactionConflictOnce(t *testing.T) {
	f := newFixture()
	f.tx.FailSerialization = 1

	_, err := f.uc.Execute(context.Background(), request("10:00"))

	require.NoError(t, err)
	assert.Equal(t, 2, f.tx.Calls)
}

func TestExecute_ConcurrencyConflictAfterRetry(t *testing.T) {
	f := newFixture()
	f.tx.FailSerialization = 2

	_, err := f.uc.Execute(context.Background(), request("10:00"))

	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, 2, f.tx.Calls)
	assert.Equal(t, 0, f.ledger.Live(1, visitDate, domain.HourWindowAt(10)))
}

func TestExecute_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"empty reason", func(r *Request) { r.Reason = "   " }, ErrInvalidInput},
		{"past date", func(r *Request) { r.Date = now.AddDate(0, 0, -1) }, admission.ErrDateInPast},
		{"too far", func(r *Request) { r.Date = now.AddDate(0, 0, 31) }, admission.ErrDateTooFarInFuture},
		{"unavailable doctor", func(r *Request) { r.DoctorID = 2 }, admission.ErrDoctorUnavailable},
		{"unknown doctor", func(r *Request) { r.DoctorID = 9 }, ErrDoctorNotFound},
		{"bad time", func(r *Request) { r.Time = "9am" }, admission.ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request("10:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.tx.Calls)
		})
	}
}
