package events

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentConfirmedType тип события подтверждения записи
const AppointmentConfirmedType = "appointment.confirmed"

// AppointmentConfirmed событие: запись подтверждена (оплатой или врачом)
type AppointmentConfirmed struct {
	EventID       string    `json:"event_id"`
	AppointmentID int64     `json:"appointment_id"`
	DoctorID      int64     `json:"doctor_id"`
	PatientID     int64     `json:"patient_id"`
	Source        string    `json:"source"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewAppointmentConfirmed заполняет идентификатор и время события
func NewAppointmentConfirmed(appointmentID, doctorID, patientID int64, source string) AppointmentConfirmed {
	return AppointmentConfirmed{
		EventID:       uuid.NewString(),
		AppointmentID: appointmentID,
		DoctorID:      doctorID,
		PatientID:     patientID,
		Source:        source,
		OccurredAt:    time.Now().UTC(),
	}
}
