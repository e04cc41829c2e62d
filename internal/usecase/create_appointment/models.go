package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// Request модель запроса на запись к врачу
type Request struct {
	PatientID int64            // ID пользователя-пациента
	DoctorID  int64            // ID врача
	Date      time.Time        // Дата приёма (без времени)
	Time      types.TimeString // Время начала, например "14:30"
	Reason    string           // Причина обращения
	Symptoms  *string          // Симптомы (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID            int64
	PatientID     int64
	DoctorID      int64
	DoctorName    string
	Date          time.Time
	Time          types.TimeString
	Reason        string
	Symptoms      *string
	Status        string
	PaymentStatus string
	Amount        float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
