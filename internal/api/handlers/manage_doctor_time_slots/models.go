package manage_doctor_time_slots

import "github.com/m04kA/SMC-DoctorBookingService/internal/service/schedule/models"

// AddSlotRequest HTTP request model; врач берётся из URL
type AddSlotRequest struct {
	Weekday     *int   `json:"weekday"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddSlotRequest) ToServiceRequest(doctorID int64) *models.AddSlotRequest {
	weekday := -1
	if r.Weekday != nil {
		weekday = *r.Weekday
	}
	return &models.AddSlotRequest{
		DoctorID:    doctorID,
		Weekday:     weekday,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.IsAvailable,
	}
}
