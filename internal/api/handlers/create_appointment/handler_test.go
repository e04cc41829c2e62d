package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/admission"
	createAppointment "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createAppointment.Response), args.Error(1)
}

const validBody = `{"doctorId":1,"date":"2025-10-15","time":"14:30","reason":"checkup"}`

func post(h *Handler, body string, withUser bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	if withUser {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 42}))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_Created(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &createAppointment.Request{
		PatientID: 42,
		DoctorID:  1,
		Date:      date,
		Time:      "14:30",
		Reason:    "checkup",
	}).Return(&createAppointment.Response{
		ID:            10,
		PatientID:     42,
		DoctorID:      1,
		DoctorName:    "House",
		Date:          date,
		Time:          "14:30",
		Reason:        "checkup",
		Status:        "pending",
		PaymentStatus: "pending",
		Amount:        500,
	}, nil)

	rec := post(NewHandler(uc, logger.Nop()), validBody, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(10), body.ID)
	assert.Equal(t, "02:30 PM", body.TimeDisplay)
	assert.Equal(t, "pending", body.Status)
}

func TestHandle_CapacityExceeded(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil,
		&domain.CapacityExceededError{DoctorName: "House", Window: domain.HourWindowAt(14), Capacity: 20})

	rec := post(NewHandler(uc, logger.Nop()), validBody, true)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "Dr. House already has 20 appointments booked between 02:00 PM - 03:00 PM")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		withUser   bool
		ucErr      error
		wantStatus int
	}{
		{"no user", validBody, false, nil, http.StatusUnauthorized},
		{"bad json", `{`, true, nil, http.StatusBadRequest},
		{"bad date", `{"doctorId":1,"date":"15/10/2025","time":"14:30","reason":"x"}`, true, nil, http.StatusBadRequest},
		{"bad time", `{"doctorId":1,"date":"2025-10-15","time":"2pm","reason":"x"}`, true, nil, http.StatusBadRequest},
		{"doctor not found", validBody, true, createAppointment.ErrDoctorNotFound, http.StatusNotFound},
		{"invalid input", validBody, true, createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"past date", validBody, true, admission.ErrDateInPast, http.StatusBadRequest},
		{"concurrency", validBody, true, domain.ErrConcurrencyConflict, http.StatusServiceUnavailable},
		{"internal", validBody, true, createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr).Maybe()

			rec := post(NewHandler(uc, logger.Nop()), tt.body, tt.withUser)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
