package meetingservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
)

func TestCreateMeeting(t *testing.T) {
	start := time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body createMeetingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Consultation with Dr. House", body.Topic)
		assert.Equal(t, "2025-10-15T14:30:00Z", body.StartTime)
		assert.Equal(t, 30, body.Duration)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(MeetingResponse{ID: "m-1", JoinURL: "https://meet/j/1", StartURL: "https://meet/s/1", Password: "pw"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok", time.Second, logger.Nop())
	meeting, err := client.CreateMeeting(context.Background(), MeetingRequest{
		Topic:           "Consultation with Dr. House",
		StartTime:       start,
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, "m-1", meeting.ID)
	assert.Equal(t, "https://meet/j/1", meeting.JoinURL)
}

func TestCreateMeeting_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"server error", http.StatusInternalServerError, ErrInvalidResponse},
		{"empty body", http.StatusOK, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("{}"))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "tok", time.Second, logger.Nop())
			_, err := client.CreateMeeting(context.Background(), MeetingRequest{Topic: "t", StartTime: time.Now()})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
