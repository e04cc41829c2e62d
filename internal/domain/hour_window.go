package domain

import (
	"fmt"

	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// HourWindow полуоткрытый часовой интервал [H:00, H+1:00), единица почасового лимита
// Окно 23:00 заканчивается в 24:00
type HourWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// NewHourWindow возвращает окно, содержащее время t
func NewHourWindow(t types.TimeString) HourWindow {
	start := t.TruncateToHour()
	end, err := start.AddMinutes(60)
	if err != nil {
		end = types.EndOfDay
	}
	return HourWindow{Start: start, End: end}
}

// HourWindowAt возвращает окно для часа hour (0-23)
func HourWindowAt(hour int) HourWindow {
	return NewHourWindow(types.TimeString(fmt.Sprintf("%02d:00", hour)))
}

// Contains returns true if start <= t < end
func (w HourWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// EndsAtMidnight returns true for the 23:00 window
func (w HourWindow) EndsAtMidnight() bool {
	return w.End == types.EndOfDay
}

// Hour returns the starting clock hour
func (w HourWindow) Hour() int {
	return w.Start.Hour()
}

// String returns "14:00 - 15:00"
func (w HourWindow) String() string {
	return fmt.Sprintf("%s - %s", w.Start, w.End)
}

// Display returns "02:00 PM - 03:00 PM"
func (w HourWindow) Display() string {
	return fmt.Sprintf("%s - %s", w.Start.Display(), w.End.Display())
}
