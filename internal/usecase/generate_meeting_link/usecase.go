package generate_meeting_link

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-DoctorBookingService/internal/integrations/meetingservice"
)

// UseCase use case создания ссылки на онлайн-консультацию
type UseCase struct {
	appointmentRepo AppointmentRepository
	doctorRepo      DoctorRepository
	meetingClient   MeetingClient
	durationMinutes int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	meetingClient MeetingClient,
	durationMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		meetingClient:   meetingClient,
		durationMinutes: durationMinutes,
		logger:          logger,
	}
}

// Execute создает встречу для оплаченной записи; повторный вызов возвращает существующую ссылку.
// Ошибки сервиса встреч не меняют запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateMeetingLink: appointment=%d", req.AppointmentID)

	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("GenerateMeetingLink: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("GenerateMeetingLink: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	doctor, err := uc.doctorRepo.GetByID(ctx, appointment.DoctorID)
	if err != nil {
		uc.logger.Error("GenerateMeetingLink: failed to get doctor id=%d: %v", appointment.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if req.Actor != nil && !req.Actor.IsPatientOf(appointment) && !req.Actor.CanActForDoctor(doctor) {
		uc.logger.Warn("GenerateMeetingLink: access denied for user=%d to appointment id=%d", req.Actor.UserID, appointment.ID)
		return nil, ErrAccessDenied
	}

	if appointment.HasMeeting() {
		uc.logger.Info("GenerateMeetingLink: appointment id=%d already has meeting %s", appointment.ID, appointment.Meeting.ID)
		return toResponse(appointment.ID, *appointment.Meeting, false), nil
	}

	if !appointment.IsPaid() {
		uc.logger.Warn("GenerateMeetingLink: appointment id=%d payment_status=%s", appointment.ID, appointment.PaymentStatus)
		return nil, ErrNotPaid
	}

	created, err := uc.meetingClient.CreateMeeting(ctx, meetingservice.MeetingRequest{
		Topic:           "Consultation with Dr. " + doctor.Name,
		StartTime:       appointment.StartsAt(),
		DurationMinutes: uc.durationMinutes,
		Agenda:          appointment.Reason,
	})
	if err != nil {
		uc.logger.Error("GenerateMeetingLink: meeting service failed for appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrMeetingService, err)
	}

	meeting := domain.Meeting{
		ID:       created.ID,
		JoinURL:  created.JoinURL,
		StartURL: created.StartURL,
		Password: created.Password,
	}

	if err := uc.appointmentRepo.SetMeeting(ctx, appointment.ID, meeting); err != nil {
		uc.logger.Error("GenerateMeetingLink: failed to store meeting %s for appointment id=%d: %v", meeting.ID, appointment.ID, err)
		return nil, fmt.Errorf("%w: failed to store meeting: %v", ErrInternal, err)
	}

	uc.logger.Info("GenerateMeetingLink: meeting %s created for appointment id=%d", meeting.ID, appointment.ID)
	return toResponse(appointment.ID, meeting, true), nil
}

// HandleAppointmentConfirmed обработчик события appointment.confirmed
func (uc *UseCase) HandleAppointmentConfirmed(ctx context.Context, event events.AppointmentConfirmed) error {
	_, err := uc.Execute(ctx, &Request{AppointmentID: event.AppointmentID})
	if errors.Is(err, ErrNotPaid) {
		// Подтверждение врачом без оплаты: ссылка появится после оплаты
		uc.logger.Info("GenerateMeetingLink: skip unpaid appointment id=%d from %s", event.AppointmentID, event.Source)
		return nil
	}
	return err
}

func toResponse(appointmentID int64, m domain.Meeting, created bool) *Response {
	return &Response{
		AppointmentID: appointmentID,
		MeetingID:     m.ID,
		JoinURL:       m.JoinURL,
		StartURL:      m.StartURL,
		Password:      m.Password,
		Created:       created,
	}
}
