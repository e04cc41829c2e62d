package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		withUser   bool
		resp       *models.AppointmentResponse
		svcErr     error
		wantStatus int
	}{
		{"ok", "/appointments/3", true, &models.AppointmentResponse{ID: 3}, nil, http.StatusOK},
		{"bad id", "/appointments/0", true, nil, nil, http.StatusBadRequest},
		{"no user", "/appointments/3", false, nil, nil, http.StatusUnauthorized},
		{"not found", "/appointments/3", true, nil, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"forbidden", "/appointments/3", true, nil, appointments.ErrAccessDenied, http.StatusForbidden},
		{"internal", "/appointments/3", true, nil, appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.resp != nil {
				svc.On("GetByID", mock.Anything, int64(3), domain.Actor{UserID: 42}).Return(tt.resp, nil)
			} else {
				svc.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.svcErr).Maybe()
			}

			router := mux.NewRouter()
			router.HandleFunc("/appointments/{appointmentId}", NewHandler(svc, logger.Nop()).Handle)

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.withUser {
				r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 42}))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
