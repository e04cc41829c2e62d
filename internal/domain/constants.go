package domain

// Значения политики записи по умолчанию
const (
	DefaultHourlyCapacity        = 20
	DefaultAlmostFullThreshold   = 15
	DefaultDashboardStartHour    = 8
	DefaultDashboardEndHour      = 20
	DefaultMaxAdvanceBookingDays = 30
)

// Ограничения входных данных
const (
	MaxReasonLength   = 1000
	MaxSymptomsLength = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// LiveStatuses статусы записей, которые занимают слот и учитываются в почасовом лимите
var LiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// HistoryStatuses завершённые записи
var HistoryStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}
