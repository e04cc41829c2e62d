package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
// PatientID берётся из заголовка X-User-ID
type CreateAppointmentRequest struct {
	DoctorID int64   `json:"doctorId"`
	Date     string  `json:"date"` // "2025-10-15"
	Time     string  `json:"time"` // "14:30"
	Reason   string  `json:"reason"`
	Symptoms *string `json:"symptoms,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	PatientID     int64   `json:"patientId"`
	DoctorID      int64   `json:"doctorId"`
	DoctorName    string  `json:"doctorName"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	TimeDisplay   string  `json:"timeDisplay"`
	Reason        string  `json:"reason"`
	Symptoms      *string `json:"symptoms,omitempty"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	Amount        float64 `json:"amount"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(patientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createAppointment.Request{
		PatientID: patientID,
		DoctorID:  r.DoctorID,
		Date:      date,
		Time:      t,
		Reason:    r.Reason,
		Symptoms:  r.Symptoms,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		PatientID:     resp.PatientID,
		DoctorID:      resp.DoctorID,
		DoctorName:    resp.DoctorName,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		TimeDisplay:   resp.Time.Display(),
		Reason:        resp.Reason,
		Symptoms:      resp.Symptoms,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		Amount:        resp.Amount,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
