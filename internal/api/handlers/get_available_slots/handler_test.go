package get_available_slots

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

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/doctors/{doctorId}/available-slots", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{DoctorID: 1, Date: date}).Return(&getAvailableSlots.Response{
		DoctorID: 1,
		Date:     date,
		Slots:    []domain.AvailableSlot{{Time: "09:00"}, {Time: "14:30"}},
	}, nil)

	rec := serve(NewHandler(uc, logger.Nop()), "/doctors/1/available-slots?date=2025-10-15")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-10-15", body.Date)
	assert.Equal(t, []SlotResponse{{Time: "09:00", Display: "09:00 AM"}, {Time: "14:30", Display: "02:30 PM"}}, body.Slots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
	}{
		{"bad doctor id", "/doctors/abc/available-slots?date=2025-10-15", nil, http.StatusBadRequest},
		{"missing date", "/doctors/1/available-slots", nil, http.StatusBadRequest},
		{"bad date", "/doctors/1/available-slots?date=15.10.2025", nil, http.StatusBadRequest},
		{"doctor not found", "/doctors/1/available-slots?date=2025-10-15", getAvailableSlots.ErrDoctorNotFound, http.StatusNotFound},
		{"internal", "/doctors/1/available-slots?date=2025-10-15", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr).Maybe()

			rec := serve(NewHandler(uc, logger.Nop()), tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
