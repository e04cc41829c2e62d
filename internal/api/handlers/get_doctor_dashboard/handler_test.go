package get_doctor_dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	getDoctorDashboard "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/get_doctor_dashboard"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getDoctorDashboard.Request) (*getDoctorDashboard.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getDoctorDashboard.Response), args.Error(1)
}

func serve(uc *mockUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/doctors/{doctorId}/dashboard", NewHandler(uc, logger.Nop()).Handle)

	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 7}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandle(t *testing.T) {
	policy := domain.DefaultAdmissionPolicy()
	today := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getDoctorDashboard.Request{DoctorID: 1, Actor: domain.Actor{UserID: 7}}).
		Return(&getDoctorDashboard.Response{
			DoctorID:   1,
			DoctorName: "House",
			Date:       today,
			Today: []*domain.Appointment{
				{ID: 1, DoctorID: 1, Date: today, Time: "14:30", Status: domain.StatusPending},
			},
			UpcomingCount: 3,
			HourlyLoad: []domain.HourLoad{
				{Window: domain.HourWindowAt(14), Count: 20, Capacity: 20, Label: policy.LoadLabel(20), IsFull: true, IsAlmostFull: true},
			},
		}, nil)

	rec := serve(uc, "/doctors/1/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var body DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Today, 1)
	assert.Empty(t, body.Upcoming)
	require.Len(t, body.HourlyLoad, 1)
	assert.Equal(t, "FULL (20/20)", body.HourlyLoad[0].Label)
	assert.Equal(t, "02:00 PM - 03:00 PM", body.HourlyLoad[0].Display)
}

func TestHandle_Forbidden(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getDoctorDashboard.ErrAccessDenied)

	assert.Equal(t, http.StatusForbidden, serve(uc, "/doctors/1/dashboard").Code)
}
