package domain

import "fmt"

// AdmissionPolicy параметры почасового ограничения записи
// Передаются из конфигурации, чтобы контроллер можно было проверять с другими значениями
type AdmissionPolicy struct {
	HourlyCapacity        int
	AlmostFullThreshold   int
	DashboardStartHour    int
	DashboardEndHour      int
	MaxAdvanceBookingDays int
}

// DefaultAdmissionPolicy 20 записей в час, порог 15, часы 08-20, запись на 30 дней вперёд
func DefaultAdmissionPolicy() AdmissionPolicy {
	return AdmissionPolicy{
		HourlyCapacity:        DefaultHourlyCapacity,
		AlmostFullThreshold:   DefaultAlmostFullThreshold,
		DashboardStartHour:    DefaultDashboardStartHour,
		DashboardEndHour:      DefaultDashboardEndHour,
		MaxAdvanceBookingDays: DefaultMaxAdvanceBookingDays,
	}
}

// IsFull returns true when the hour has no room left
func (p AdmissionPolicy) IsFull(count int) bool {
	return count >= p.HourlyCapacity
}

// IsAlmostFull returns true when the count reached the warning threshold
func (p AdmissionPolicy) IsAlmostFull(count int) bool {
	return count >= p.AlmostFullThreshold
}

// LoadLabel возвращает подпись загрузки часа для дашборда
func (p AdmissionPolicy) LoadLabel(count int) string {
	switch {
	case p.IsFull(count):
		return fmt.Sprintf("FULL (%d/%d)", p.HourlyCapacity, p.HourlyCapacity)
	case p.IsAlmostFull(count):
		return fmt.Sprintf("Almost Full (%d/%d)", count, p.HourlyCapacity)
	case count > 0:
		return fmt.Sprintf("Booked (%d/%d)", count, p.HourlyCapacity)
	default:
		return "Available"
	}
}

// HourLoad загрузка одного часа
type HourLoad struct {
	Window       HourWindow
	Count        int
	Capacity     int
	Label        string
	IsFull       bool
	IsAlmostFull bool
}
