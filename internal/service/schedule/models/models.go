package models

import (
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// Request модели

// AddSlotRequest запрос на добавление окна приёма
type AddSlotRequest struct {
	DoctorID    int64  `json:"doctorId"`
	Weekday     int    `json:"weekday"`   // 0 = понедельник ... 6 = воскресенье
	StartTime   string `json:"startTime"` // "09:00"
	EndTime     string `json:"endTime"`   // "12:00"
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// Response модели

// SlotResponse окно приёма врача
type SlotResponse struct {
	ID          int64  `json:"id"`
	DoctorID    int64  `json:"doctorId"`
	Weekday     int    `json:"weekday"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// DoctorSlotsResponse все окна приёма врача
type DoctorSlotsResponse struct {
	DoctorID int64          `json:"doctorId"`
	Slots    []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.RecurringSlot) *SlotResponse {
	if s == nil {
		return nil
	}
	return &SlotResponse{
		ID:          s.ID,
		DoctorID:    s.DoctorID,
		Weekday:     int(s.Weekday),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		IsAvailable: s.IsAvailable,
	}
}

// ToDomainSlot конвертирует запрос в domain модель; по умолчанию окно доступно
func (r *AddSlotRequest) ToDomainSlot() *domain.RecurringSlot {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return &domain.RecurringSlot{
		DoctorID:    r.DoctorID,
		Weekday:     domain.Weekday(r.Weekday),
		StartTime:   types.TimeString(r.StartTime),
		EndTime:     types.TimeString(r.EndTime),
		IsAvailable: available,
	}
}
