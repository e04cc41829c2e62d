package admission

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// CheckPreconditions проверяет условия записи до обращения к журналу:
// дата не в прошлом и не дальше MaxAdvanceBookingDays, время корректно, врач принимает
func (s *Service) CheckPreconditions(doctor *domain.Doctor, date time.Time, t types.TimeString, now time.Time) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	today := dateOnly(now)
	day := dateOnly(date)

	if day.Before(today) {
		return ErrDateInPast
	}

	if s.policy.MaxAdvanceBookingDays > 0 {
		maxDate := today.AddDate(0, 0, s.policy.MaxAdvanceBookingDays)
		if day.After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, s.policy.MaxAdvanceBookingDays)
		}
	}

	if !doctor.IsAvailable {
		return ErrDoctorUnavailable
	}

	return nil
}

// dateOnly обнуляет время, сохраняя календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
