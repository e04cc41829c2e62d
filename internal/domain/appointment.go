package domain

import (
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus returns ErrInvalidInput for unknown values
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidInput
	}
}

// PaymentStatus represents the payment state of an appointment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Meeting online consultation link attached to an appointment
type Meeting struct {
	ID       string
	JoinURL  string
	StartURL string
	Password string
}

// Appointment represents a patient booking with a doctor
type Appointment struct {
	ID            int64
	PatientID     int64 // ID пользователя во внешнем сервисе пользователей
	DoctorID      int64
	Date          time.Time
	Time          types.TimeString
	Reason        string
	Symptoms      *string
	Status        AppointmentStatus
	PaymentStatus PaymentStatus
	Amount        float64
	Meeting       *Meeting

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true if the appointment occupies its slot and counts toward hourly capacity
func (a *Appointment) IsLive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsHistory returns true for terminal appointments
func (a *Appointment) IsHistory() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.IsLive()
}

// CanBeRescheduled returns true if the appointment can be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.IsLive()
}

// CanBeConfirmed returns true if the appointment awaits confirmation
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// CanBeCompleted returns true if the consultation can be marked as done
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed
}

// IsPaid returns true if the payment went through
func (a *Appointment) IsPaid() bool {
	return a.PaymentStatus == PaymentPaid
}

// HasMeeting returns true if a meeting link was already generated
func (a *Appointment) HasMeeting() bool {
	return a.Meeting != nil && a.Meeting.JoinURL != ""
}

// StartsAt returns the appointment date combined with its time
func (a *Appointment) StartsAt() time.Time {
	return a.Time.On(a.Date)
}

// PatientAppointmentsFilter фильтр записей пациента
type PatientAppointmentsFilter struct {
	PatientID int64              // Обязательный параметр
	Status    *AppointmentStatus // Фильтр по статусу (опционально)
}

// DoctorAppointmentsFilter фильтр записей врача
type DoctorAppointmentsFilter struct {
	DoctorID  int64
	StartDate *time.Time          // Начало периода (включительно)
	EndDate   *time.Time          // Конец периода (включительно)
	Statuses  []AppointmentStatus // Пустой список - все статусы
}
