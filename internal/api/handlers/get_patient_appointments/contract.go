package get_patient_appointments

import (
	"context"

	"github.com/m04kA/SMC-DoctorBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListForPatient(ctx context.Context, req *models.ListPatientAppointmentsRequest) (*models.PatientAppointmentsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
