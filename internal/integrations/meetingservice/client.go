package meetingservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// scheduledMeeting тип встречи с заданным временем начала
const scheduledMeeting = 2

// Client клиент сервиса видеовстреч
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса встреч
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateMeeting создает запланированную встречу
func (c *Client) CreateMeeting(ctx context.Context, req MeetingRequest) (*MeetingResponse, error) {
	payload, err := json.Marshal(createMeetingRequest{
		Topic:     req.Topic,
		Type:      scheduledMeeting,
		StartTime: req.StartTime.UTC().Format(time.RFC3339),
		Duration:  req.DurationMinutes,
		Timezone:  "UTC",
		Agenda:    req.Agenda,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/me/meetings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("Failed to call meeting service: %v", err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var meeting MeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if meeting.JoinURL == "" {
		return nil, fmt.Errorf("%w: missing join_url", ErrInvalidResponse)
	}

	c.log.Info("Meeting created: id=%s, topic=%s", meeting.ID, req.Topic)
	return &meeting, nil
}
