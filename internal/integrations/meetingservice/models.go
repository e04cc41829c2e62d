package meetingservice

import "time"

// MeetingRequest параметры создаваемой видеовстречи
type MeetingRequest struct {
	Topic           string
	StartTime       time.Time
	DurationMinutes int
	Agenda          string
}

type createMeetingRequest struct {
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone"`
	Agenda    string `json:"agenda,omitempty"`
}

// MeetingResponse ответ сервиса встреч
type MeetingResponse struct {
	ID       string `json:"id"`
	JoinURL  string `json:"join_url"`
	StartURL string `json:"start_url"`
	Password string `json:"password"`
}
