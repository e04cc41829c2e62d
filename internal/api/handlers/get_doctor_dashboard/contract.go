package get_doctor_dashboard

import (
	"context"

	getDoctorDashboard "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/get_doctor_dashboard"
)

type GetDoctorDashboardUseCase interface {
	Execute(ctx context.Context, req *getDoctorDashboard.Request) (*getDoctorDashboard.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
