package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64
	Actor         domain.Actor
	Date          time.Time        // Новая дата
	Time          types.TimeString // Новое время
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID           int64
	DoctorID     int64
	PreviousDate time.Time
	PreviousTime types.TimeString
	Date         time.Time
	Time         types.TimeString
	Status       string
}
