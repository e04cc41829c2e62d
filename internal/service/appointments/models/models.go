package models

import (
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
)

// Request модели

// ListPatientAppointmentsRequest запрос на получение записей пациента
type ListPatientAppointmentsRequest struct {
	PatientID int64   `json:"patientId"`
	Status    *string `json:"status,omitempty"`
}

// Response модели

// MeetingResponse ссылка на онлайн-консультацию
type MeetingResponse struct {
	ID       string `json:"id"`
	JoinURL  string `json:"joinUrl"`
	Password string `json:"password,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            int64            `json:"id"`
	PatientID     int64            `json:"patientId"`
	DoctorID      int64            `json:"doctorId"`
	Date          string           `json:"date"`        // "2025-10-15"
	Time          string           `json:"time"`        // "14:30"
	TimeDisplay   string           `json:"timeDisplay"` // "02:30 PM"
	Reason        string           `json:"reason"`
	Symptoms      *string          `json:"symptoms,omitempty"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"paymentStatus"`
	Amount        float64          `json:"amount"`
	Meeting       *MeetingResponse `json:"meeting,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// PatientAppointmentsResponse записи пациента по непересекающимся группам
type PatientAppointmentsResponse struct {
	Upcoming []AppointmentResponse `json:"upcoming"` // Живые, дата >= сегодня
	Overdue  []AppointmentResponse `json:"overdue"`  // Живые, дата < сегодня
	History  []AppointmentResponse `json:"history"`  // Завершённые и отменённые
	All      []AppointmentResponse `json:"all"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:            a.ID,
		PatientID:     a.PatientID,
		DoctorID:      a.DoctorID,
		Date:          a.Date.Format(domain.DateFormat),
		Time:          a.Time.String(),
		TimeDisplay:   a.Time.Display(),
		Reason:        a.Reason,
		Symptoms:      a.Symptoms,
		Status:        string(a.Status),
		PaymentStatus: string(a.PaymentStatus),
		Amount:        a.Amount,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	if a.HasMeeting() {
		resp.Meeting = &MeetingResponse{
			ID:       a.Meeting.ID,
			JoinURL:  a.Meeting.JoinURL,
			Password: a.Meeting.Password,
		}
	}

	return resp
}

// PartitionPatientAppointments раскладывает записи по группам относительно today
func PartitionPatientAppointments(list []*domain.Appointment, today time.Time) *PatientAppointmentsResponse {
	resp := &PatientAppointmentsResponse{
		Upcoming: []AppointmentResponse{},
		Overdue:  []AppointmentResponse{},
		History:  []AppointmentResponse{},
		All:      make([]AppointmentResponse, 0, len(list)),
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	for _, a := range list {
		item := *FromDomainAppointment(a)
		resp.All = append(resp.All, item)

		date := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, time.UTC)
		switch {
		case a.IsHistory():
			resp.History = append(resp.History, item)
		case date.Before(day):
			resp.Overdue = append(resp.Overdue, item)
		default:
			resp.Upcoming = append(resp.Upcoming, item)
		}
	}

	return resp
}
