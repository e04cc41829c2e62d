package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/infra/events"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-DoctorBookingService/internal/testutil"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/ptr"
)

const (
	patientID    int64 = 42
	doctorUserID int64 = 7
)

type stubDoctors struct{}

func (stubDoctors) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return &domain.Doctor{ID: id, UserID: ptr.Ptr(doctorUserID), Name: "House"}, nil
}

type recordingPublisher struct {
	published []events.AppointmentConfirmed
}

func (p *recordingPublisher) PublishAppointmentConfirmed(ctx context.Context, event events.AppointmentConfirmed) error {
	p.published = append(p.published, event)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var today = time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

func newService(ledger *testutil.MemoryLedger) (*Service, *recordingPublisher) {
	pub := &recordingPublisher{}
	svc := NewService(ledger, stubDoctors{}, pub, logger.Nop())
	svc.timeProvider = fixedClock{now: today}
	return svc, pub
}

func appointmentOn(date time.Time, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		PatientID:     patientID,
		DoctorID:      1,
		Date:          date,
		Time:          "14:30",
		Reason:        "checkup",
		Status:        status,
		PaymentStatus: domain.PaymentPending,
		Amount:        500,
	}
}

func TestListForPatient_DisjointBuckets(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	ledger.Seed(appointmentOn(day, domain.StatusPending))                     // upcoming: сегодня
	ledger.Seed(appointmentOn(day.AddDate(0, 0, 3), domain.StatusConfirmed))  // upcoming
	ledger.Seed(appointmentOn(day.AddDate(0, 0, -2), domain.StatusPending))   // overdue
	ledger.Seed(appointmentOn(day.AddDate(0, 0, -5), domain.StatusCompleted)) // history
	ledger.Seed(appointmentOn(day.AddDate(0, 0, 4), domain.StatusCancelled))  // history, хоть и в будущем
	other := appointmentOn(day, domain.StatusPending)
	other.PatientID = 99
	ledger.Seed(other)

	svc, _ := newService(ledger)
	resp, err := svc.ListForPatient(context.Background(), &models.ListPatientAppointmentsRequest{PatientID: patientID})
	require.NoError(t, err)

	assert.Len(t, resp.Upcoming, 2)
	assert.Len(t, resp.Overdue, 1)
	assert.Len(t, resp.History, 2)
	assert.Len(t, resp.All, 5)
	assert.Equal(t, len(resp.All), len(resp.Upcoming)+len(resp.Overdue)+len(resp.History))
}

func TestListForPatient_StatusFilter(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	day := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	ledger.Seed(appointmentOn(day, domain.StatusPending))
	ledger.Seed(appointmentOn(day, domain.StatusCompleted))

	svc, _ := newService(ledger)

	resp, err := svc.ListForPatient(context.Background(), &models.ListPatientAppointmentsRequest{
		PatientID: patientID,
		Status:    ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.All, 1)
	assert.Equal(t, "completed", resp.All[0].Status)

	_, err = svc.ListForPatient(context.Background(), &models.ListPatientAppointmentsRequest{
		PatientID: patientID,
		Status:    ptr.Ptr("no_show"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_Access(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	id := ledger.Seed(appointmentOn(today, domain.StatusPending))
	svc, _ := newService(ledger)

	resp, err := svc.GetByID(context.Background(), id, domain.Actor{UserID: patientID})
	require.NoError(t, err)
	assert.Equal(t, "14:30", resp.Time)
	assert.Equal(t, "02:30 PM", resp.TimeDisplay)

	_, err = svc.GetByID(context.Background(), id, domain.Actor{UserID: doctorUserID})
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), id, domain.Actor{UserID: 1000})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), id+100, domain.Actor{IsStaff: true})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	id := ledger.Seed(appointmentOn(today, domain.StatusPending))
	svc, _ := newService(ledger)

	err := svc.Cancel(context.Background(), id, domain.Actor{UserID: 1000})
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, svc.Cancel(context.Background(), id, domain.Actor{UserID: patientID}))

	stored, err := ledger.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Equal(t, 0, ledger.Live(1, today, domain.HourWindowAt(14)))

	err = svc.Cancel(context.Background(), id, domain.Actor{UserID: patientID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestConfirm_PublishesEvent(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	id := ledger.Seed(appointmentOn(today, domain.StatusPending))
	svc, pub := newService(ledger)

	err := svc.Confirm(context.Background(), id, domain.Actor{UserID: patientID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, svc.Confirm(context.Background(), id, domain.Actor{UserID: doctorUserID}))
	require.Len(t, pub.published, 1)
	assert.Equal(t, id, pub.published[0].AppointmentID)
	assert.Equal(t, "doctor", pub.published[0].Source)

	err = svc.Confirm(context.Background(), id, domain.Actor{IsStaff: true})
	assert.ErrorIs(t, err, ErrCannotConfirm)
	assert.Len(t, pub.published, 1)
}

func TestComplete(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	pending := ledger.Seed(appointmentOn(today, domain.StatusPending))
	confirmed := ledger.Seed(appointmentOn(today, domain.StatusConfirmed))
	svc, _ := newService(ledger)

	err := svc.Complete(context.Background(), pending, domain.Actor{IsStaff: true})
	assert.ErrorIs(t, err, ErrCannotComplete)

	require.NoError(t, svc.Complete(context.Background(), confirmed, domain.Actor{IsStaff: true}))
	stored, err := ledger.GetByID(context.Background(), confirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
}

// cancelAfterRead отменяет запись сразу после чтения, как параллельный запрос пациента
type cancelAfterRead struct {
	*testutil.MemoryLedger
}

func (l cancelAfterRead) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := l.MemoryLedger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.MemoryLedger.UpdateStatus(ctx, id, domain.TransitionCancel); err != nil {
		return nil, err
	}
	return a, nil
}

func TestConfirm_DoesNotOverwriteConcurrentCancel(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	id := ledger.Seed(appointmentOn(today, domain.StatusPending))

	pub := &recordingPublisher{}
	svc := NewService(cancelAfterRead{ledger}, stubDoctors{}, pub, logger.Nop())

	err := svc.Confirm(context.Background(), id, domain.Actor{UserID: doctorUserID})

	assert.ErrorIs(t, err, ErrCannotConfirm)
	stored, _ := ledger.GetByID(context.Background(), id)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Empty(t, pub.published)
}
