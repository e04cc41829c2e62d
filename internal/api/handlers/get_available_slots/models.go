package get_available_slots

import (
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/get_available_slots"
)

// SlotResponse свободное время начала приёма
type SlotResponse struct {
	Time    string `json:"time"`    // "14:30"
	Display string `json:"display"` // "02:30 PM"
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	DoctorID int64          `json:"doctorId"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:    s.Time.String(),
			Display: s.Display(),
		})
	}

	return &AvailableSlotsResponse{
		DoctorID: resp.DoctorID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
