package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

func TestWeekdayOf(t *testing.T) {
	// 2025-10-13 - понедельник
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.Equal(t, Wednesday, WeekdayOf(monday.AddDate(0, 0, 2)))
	assert.Equal(t, Sunday, WeekdayOf(monday.AddDate(0, 0, 6)))
}

func TestNewHourWindow(t *testing.T) {
	tests := []struct {
		name      string
		time      string
		wantStart types.TimeString
		wantEnd   types.TimeString
	}{
		{"on the hour", "14:00", "14:00", "15:00"},
		{"inside the hour", "14:37", "14:00", "15:00"},
		{"midnight", "00:15", "00:00", "01:00"},
		{"last hour of day", "23:45", "23:00", types.EndOfDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewHourWindow(types.MustTimeString(tt.time))
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
		})
	}
}

func TestHourWindow_Contains(t *testing.T) {
	w := HourWindowAt(14)

	assert.True(t, w.Contains("14:00"))
	assert.True(t, w.Contains("14:59"))
	assert.False(t, w.Contains("15:00"))
	assert.False(t, w.Contains("13:59"))

	late := HourWindowAt(23)
	assert.True(t, late.EndsAtMidnight())
	assert.True(t, late.Contains("23:30"))
	assert.Equal(t, "11:00 PM - 12:00 AM", late.Display())
}

func TestAdmissionPolicy_LoadLabel(t *testing.T) {
	p := DefaultAdmissionPolicy()

	assert.Equal(t, "Available", p.LoadLabel(0))
	assert.Equal(t, "Booked (3/20)", p.LoadLabel(3))
	assert.Equal(t, "Almost Full (15/20)", p.LoadLabel(15))
	assert.Equal(t, "Almost Full (19/20)", p.LoadLabel(19))
	assert.Equal(t, "FULL (20/20)", p.LoadLabel(20))

	custom := AdmissionPolicy{HourlyCapacity: 4, AlmostFullThreshold: 3}
	assert.Equal(t, "Almost Full (3/4)", custom.LoadLabel(3))
	assert.Equal(t, "FULL (4/4)", custom.LoadLabel(4))
}

func TestCapacityExceededError(t *testing.T) {
	err := error(&CapacityExceededError{DoctorName: "House", Window: HourWindowAt(14), Capacity: 20})

	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Contains(t, err.Error(), "Dr. House")
	assert.Contains(t, err.Error(), "02:00 PM - 03:00 PM")

	var capErr *CapacityExceededError
	assert.True(t, errors.As(err, &capErr))
	assert.Equal(t, types.TimeString("14:00"), capErr.Window.Start)
}

func TestRecurringSlot_Validate(t *testing.T) {
	tests := []struct {
		name string
		slot RecurringSlot
		want error
	}{
		{"valid", RecurringSlot{Weekday: Monday, StartTime: "09:00", EndTime: "10:00"}, nil},
		{"late evening", RecurringSlot{Weekday: Sunday, StartTime: "23:00", EndTime: "23:59"}, nil},
		{"end of day is not a slot bound", RecurringSlot{Weekday: Sunday, StartTime: "23:00", EndTime: types.EndOfDay}, ErrInvalidInput},
		{"start equals end", RecurringSlot{Weekday: Monday, StartTime: "09:00", EndTime: "09:00"}, ErrScheduleConflict},
		{"start after end", RecurringSlot{Weekday: Monday, StartTime: "11:00", EndTime: "10:00"}, ErrScheduleConflict},
		{"bad weekday", RecurringSlot{Weekday: 7, StartTime: "09:00", EndTime: "10:00"}, ErrInvalidInput},
		{"bad time", RecurringSlot{Weekday: Monday, StartTime: "9am", EndTime: "10:00"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAppointment_Transitions(t *testing.T) {
	a := &Appointment{Status: StatusPending}
	assert.True(t, a.IsLive())
	assert.True(t, a.CanBeConfirmed())
	assert.False(t, a.CanBeCompleted())
	assert.True(t, a.CanBeCancelled())

	a.Status = StatusConfirmed
	assert.True(t, a.IsLive())
	assert.False(t, a.CanBeConfirmed())
	assert.True(t, a.CanBeCompleted())

	a.Status = StatusCancelled
	assert.False(t, a.IsLive())
	assert.True(t, a.IsHistory())
	assert.False(t, a.CanBeCancelled())
	assert.False(t, a.CanBeRescheduled())
}

func TestParseAppointmentStatus(t *testing.T) {
	s, err := ParseAppointmentStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseAppointmentStatus("no_show")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatusTransition_Allows(t *testing.T) {
	assert.True(t, TransitionCancel.Allows(StatusPending))
	assert.True(t, TransitionCancel.Allows(StatusConfirmed))
	assert.False(t, TransitionCancel.Allows(StatusCancelled))

	assert.True(t, TransitionConfirm.Allows(StatusPending))
	assert.False(t, TransitionConfirm.Allows(StatusCancelled))

	assert.True(t, TransitionComplete.Allows(StatusConfirmed))
	assert.False(t, TransitionComplete.Allows(StatusPending))
}
