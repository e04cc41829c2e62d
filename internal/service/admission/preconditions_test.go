package admission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

func TestCheckPreconditions(t *testing.T) {
	now := time.Date(2025, 10, 15, 16, 45, 0, 0, time.UTC)
	svc := NewService(&mockAppointmentRepo{}, domain.DefaultAdmissionPolicy(), nil, logger.Nop())
	available := &domain.Doctor{ID: 1, Name: "House", IsAvailable: true}

	tests := []struct {
		name    string
		doctor  *domain.Doctor
		date    time.Time
		time    types.TimeString
		wantErr error
	}{
		{"today", available, now, "09:00", nil},
		{"thirty days ahead", available, now.AddDate(0, 0, 30), "09:00", nil},
		{"thirty one days ahead", available, now.AddDate(0, 0, 31), "09:00", ErrDateTooFarInFuture},
		{"yesterday", available, now.AddDate(0, 0, -1), "09:00", ErrDateInPast},
		{"bad time", available, now, "25:00", ErrInvalidTime},
		{"doctor unavailable", &domain.Doctor{ID: 2, IsAvailable: false}, now, "09:00", ErrDoctorUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckPreconditions(tt.doctor, tt.date, tt.time, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
