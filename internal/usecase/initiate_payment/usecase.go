package initiate_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/appointment"
)

// UseCase use case для создания платежа за приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	paymentRepo     PaymentRepository
	gateway         PaymentGateway
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGateway,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		gateway:         gateway,
		logger:          logger,
	}
}

// Execute создает платёж в шлюзе и сохраняет его со статусом pending
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("InitiatePayment: appointment=%d, user=%d", req.AppointmentID, req.Actor.UserID)

	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("InitiatePayment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !req.Actor.IsStaff && !req.Actor.IsPatientOf(appointment) {
		uc.logger.Warn("InitiatePayment: access denied for user=%d to appointment id=%d", req.Actor.UserID, appointment.ID)
		return nil, ErrAccessDenied
	}

	if appointment.IsPaid() {
		return nil, ErrAlreadyPaid
	}

	if !appointment.IsLive() {
		return nil, ErrCannotPay
	}

	invoice := "INV-" + uuid.NewString()

	created, err := uc.gateway.CreatePayment(ctx, appointment.Amount, invoice)
	if err != nil {
		uc.logger.Error("InitiatePayment: gateway failed for appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	payment, err := uc.paymentRepo.Create(ctx, &domain.Payment{
		AppointmentID: appointment.ID,
		Amount:        appointment.Amount,
		Method:        domain.PaymentMethodGateway,
		PaymentID:     created.PaymentID,
		InvoiceNumber: invoice,
		Status:        domain.PaymentRecordPending,
	})
	if err != nil {
		uc.logger.Error("InitiatePayment: failed to store payment %s: %v", created.PaymentID, err)
		return nil, fmt.Errorf("%w: failed to store payment: %v", ErrInternal, err)
	}

	uc.logger.Info("InitiatePayment: payment id=%d, gateway_id=%s, invoice=%s created for appointment id=%d",
		payment.ID, payment.PaymentID, invoice, appointment.ID)

	return &Response{
		AppointmentID: appointment.ID,
		PaymentID:     payment.PaymentID,
		InvoiceNumber: invoice,
		Amount:        payment.Amount,
		RedirectURL:   created.RedirectURL,
	}, nil
}
