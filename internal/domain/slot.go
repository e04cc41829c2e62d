package domain

import (
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// Weekday день недели, 0 = понедельник ... 6 = воскресенье
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayOf возвращает день недели даты в нумерации с понедельника
func WeekdayOf(date time.Time) Weekday {
	return Weekday((int(date.Weekday()) + 6) % 7)
}

// IsValid returns true for 0..6
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

// RecurringSlot регулярное окно приёма врача в определённый день недели
type RecurringSlot struct {
	ID          int64
	DoctorID    int64
	Weekday     Weekday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Validate проверяет день недели и порядок границ окна
func (s *RecurringSlot) Validate() error {
	if !s.Weekday.IsValid() {
		return ErrInvalidInput
	}
	if err := s.StartTime.Validate(); err != nil {
		return ErrInvalidInput
	}
	if err := s.EndTime.Validate(); err != nil {
		return ErrInvalidInput
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return ErrScheduleConflict
	}
	return nil
}

// AvailableSlot свободное время начала приёма
type AvailableSlot struct {
	Time types.TimeString
}

// Display returns the 12-hour representation, e.g. "02:30 PM"
func (s AvailableSlot) Display() string {
	return s.Time.Display()
}
