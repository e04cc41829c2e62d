package generate_meeting_link

import (
	"context"

	generateMeetingLink "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/generate_meeting_link"
)

type GenerateMeetingLinkUseCase interface {
	Execute(ctx context.Context, req *generateMeetingLink.Request) (*generateMeetingLink.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
