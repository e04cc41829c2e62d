package get_doctor_dashboard

import (
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/appointments/models"
	getDoctorDashboard "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/get_doctor_dashboard"
)

// HourLoadResponse загрузка часа
type HourLoadResponse struct {
	Window       string `json:"window"`  // "14:00 - 15:00"
	Display      string `json:"display"` // "02:00 PM - 03:00 PM"
	Count        int    `json:"count"`
	Capacity     int    `json:"capacity"`
	Label        string `json:"label"`
	IsFull       bool   `json:"isFull"`
	IsAlmostFull bool   `json:"isAlmostFull"`
}

// DashboardResponse HTTP response model
type DashboardResponse struct {
	DoctorID       int64                        `json:"doctorId"`
	DoctorName     string                       `json:"doctorName"`
	Date           string                       `json:"date"`
	Today          []models.AppointmentResponse `json:"today"`
	Upcoming       []models.AppointmentResponse `json:"upcoming"`
	UpcomingCount  int                          `json:"upcomingCount"`
	CompletedCount int                          `json:"completedCount"`
	HourlyLoad     []HourLoadResponse           `json:"hourlyLoad"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDoctorDashboard.Response) *DashboardResponse {
	result := &DashboardResponse{
		DoctorID:       resp.DoctorID,
		DoctorName:     resp.DoctorName,
		Date:           resp.Date.Format(domain.DateFormat),
		Today:          toAppointments(resp.Today),
		Upcoming:       toAppointments(resp.Upcoming),
		UpcomingCount:  resp.UpcomingCount,
		CompletedCount: resp.CompletedCount,
		HourlyLoad:     make([]HourLoadResponse, 0, len(resp.HourlyLoad)),
	}

	for _, l := range resp.HourlyLoad {
		result.HourlyLoad = append(result.HourlyLoad, HourLoadResponse{
			Window:       l.Window.String(),
			Display:      l.Window.Display(),
			Count:        l.Count,
			Capacity:     l.Capacity,
			Label:        l.Label,
			IsFull:       l.IsFull,
			IsAlmostFull: l.IsAlmostFull,
		})
	}

	return result
}

func toAppointments(list []*domain.Appointment) []models.AppointmentResponse {
	result := make([]models.AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, *models.FromDomainAppointment(a))
	}
	return result
}
