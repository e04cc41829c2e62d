package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Дата (без времени)
}

// Response модель ответа со свободными временами начала
type Response struct {
	DoctorID int64
	Date     time.Time
	Slots    []domain.AvailableSlot // По возрастанию, без повторов
}
