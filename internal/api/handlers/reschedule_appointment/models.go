package reschedule_appointment

import (
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date string `json:"date"` // "2025-10-16"
	Time string `json:"time"` // "10:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID           int64  `json:"id"`
	DoctorID     int64  `json:"doctorId"`
	PreviousDate string `json:"previousDate"`
	PreviousTime string `json:"previousTime"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:           resp.ID,
		DoctorID:     resp.DoctorID,
		PreviousDate: resp.PreviousDate.Format(domain.DateFormat),
		PreviousTime: resp.PreviousTime.String(),
		Date:         resp.Date.Format(domain.DateFormat),
		Time:         resp.Time.String(),
		Status:       resp.Status,
	}
}
