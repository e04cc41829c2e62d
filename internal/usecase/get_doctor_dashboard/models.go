package get_doctor_dashboard

import (
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
)

// upcomingLimit сколько ближайших записей показывать
const upcomingLimit = 10

// Request модель запроса дашборда врача
type Request struct {
	DoctorID int64
	Actor    domain.Actor
}

// Response модель дашборда
type Response struct {
	DoctorID       int64
	DoctorName     string
	Date           time.Time
	Today          []*domain.Appointment // Все записи на сегодня по времени
	Upcoming       []*domain.Appointment // Ближайшие живые записи после сегодняшнего дня
	UpcomingCount  int
	CompletedCount int
	HourlyLoad     []domain.HourLoad
}
