package generate_meeting_link

import generateMeetingLink "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/generate_meeting_link"

// MeetingLinkResponse HTTP response model
type MeetingLinkResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	MeetingID     string `json:"meetingId"`
	JoinURL       string `json:"joinUrl"`
	StartURL      string `json:"startUrl,omitempty"`
	Password      string `json:"password,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateMeetingLink.Response) *MeetingLinkResponse {
	return &MeetingLinkResponse{
		AppointmentID: resp.AppointmentID,
		MeetingID:     resp.MeetingID,
		JoinURL:       resp.JoinURL,
		StartURL:      resp.StartURL,
		Password:      resp.Password,
	}
}
