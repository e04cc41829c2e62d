package payment_callback

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/appointment"
	paymentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/ptr"
)

const eventSource = "payment"

// UseCase use case обработки возврата из платёжного шлюза.
// Подтверждает запись без повторного допуска: место уже занято записью pending
type UseCase struct {
	appointmentRepo AppointmentRepository
	paymentRepo     PaymentRepository
	gateway         PaymentGateway
	publisher       EventPublisher
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGateway,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		gateway:         gateway,
		publisher:       publisher,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PaymentCallback: payment_id=%s, status=%s", req.PaymentID, req.Status)

	if req.PaymentID == "" {
		return nil, fmt.Errorf("%w: paymentID is required", ErrInvalidInput)
	}

	switch req.Status {
	case CallbackSuccess, CallbackFailure, CallbackCancel:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	payment, err := uc.paymentRepo.GetByPaymentID(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("PaymentCallback: payment_id=%s not found", req.PaymentID)
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("PaymentCallback: failed to get payment_id=%s: %v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	// Повторный callback по уже обработанному платежу
	if !payment.IsPending() {
		return uc.alreadyProcessed(payment), nil
	}

	if req.Status != CallbackSuccess {
		return uc.fail(ctx, payment)
	}

	executed, err := uc.gateway.ExecutePayment(ctx, payment.PaymentID)
	if err != nil {
		uc.logger.Warn("PaymentCallback: execute failed for payment_id=%s: %v", payment.PaymentID, err)
		return uc.fail(ctx, payment)
	}

	return uc.complete(ctx, payment, executed.TransactionID)
}

func (uc *UseCase) complete(ctx context.Context, payment *domain.Payment, transactionID string) (*Response, error) {
	var appointment *domain.Appointment

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, payment.AppointmentID)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// Условный UPDATE: параллельный callback по тому же платежу получит 0 строк
		if err := uc.paymentRepo.MarkCompleted(txCtx, payment.ID, transactionID); err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentAlreadyProcessed) {
				return err
			}
			return fmt.Errorf("%w: failed to mark payment completed: %v", ErrInternal, err)
		}

		status, err := uc.markPaid(txCtx, current)
		if err != nil {
			return fmt.Errorf("%w: failed to update appointment payment: %v", ErrInternal, err)
		}

		current.Status = status
		current.PaymentStatus = domain.PaymentPaid
		appointment = current
		return nil
	})
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentAlreadyProcessed) {
			return uc.reload(ctx, payment)
		}
		uc.logger.Error("PaymentCallback: failed to complete payment_id=%s: %v", payment.PaymentID, err)
		return nil, err
	}

	uc.logger.Info("PaymentCallback: payment_id=%s completed, appointment id=%d status=%s",
		payment.PaymentID, appointment.ID, appointment.Status)

	if appointment.Status == domain.StatusConfirmed {
		event := events.NewAppointmentConfirmed(appointment.ID, appointment.DoctorID, appointment.PatientID, eventSource)
		if err := uc.publisher.PublishAppointmentConfirmed(ctx, event); err != nil {
			// Платёж проведён; ссылку на встречу можно создать вручную
			uc.logger.Warn("PaymentCallback: failed to publish confirmation for appointment id=%d: %v", appointment.ID, err)
		}
	}

	return &Response{
		AppointmentID: appointment.ID,
		PaymentID:     payment.PaymentID,
		Status:        string(domain.PaymentRecordCompleted),
		TransactionID: ptr.Ptr(transactionID),
	}, nil
}

// markPaid отмечает оплату записи и возвращает её итоговый статус.
// Только pending переходит в confirmed; отменённая запись остаётся отменённой
func (uc *UseCase) markPaid(ctx context.Context, current *domain.Appointment) (domain.AppointmentStatus, error) {
	if current.CanBeConfirmed() {
		err := uc.appointmentRepo.UpdatePayment(ctx, current.ID, domain.PaymentPaid, &domain.TransitionConfirm)
		if err == nil {
			return domain.StatusConfirmed, nil
		}
		if !errors.Is(err, appointmentRepo.ErrStatusConflict) {
			return "", err
		}
		uc.logger.Warn("PaymentCallback: appointment id=%d changed while confirming: %v", current.ID, err)
	} else {
		uc.logger.Warn("PaymentCallback: appointment id=%d paid in status=%s", current.ID, current.Status)
	}

	if err := uc.appointmentRepo.UpdatePayment(ctx, current.ID, domain.PaymentPaid, nil); err != nil {
		return "", err
	}

	fresh, err := uc.appointmentRepo.GetByID(ctx, current.ID)
	if err != nil {
		return "", err
	}
	return fresh.Status, nil
}

func (uc *UseCase) fail(ctx context.Context, payment *domain.Payment) (*Response, error) {
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.paymentRepo.MarkFailed(txCtx, payment.ID); err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentAlreadyProcessed) {
				return err
			}
			return fmt.Errorf("%w: failed to mark payment failed: %v", ErrInternal, err)
		}
		if err := uc.appointmentRepo.UpdatePayment(txCtx, payment.AppointmentID, domain.PaymentFailed, nil); err != nil {
			return fmt.Errorf("%w: failed to update appointment payment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentAlreadyProcessed) {
			return uc.reload(ctx, payment)
		}
		uc.logger.Error("PaymentCallback: failed to mark payment_id=%s failed: %v", payment.PaymentID, err)
		return nil, err
	}

	uc.logger.Info("PaymentCallback: payment_id=%s failed, appointment id=%d", payment.PaymentID, payment.AppointmentID)

	return &Response{
		AppointmentID: payment.AppointmentID,
		PaymentID:     payment.PaymentID,
		Status:        string(domain.PaymentRecordFailed),
	}, nil
}

// reload перечитывает платёж, который параллельно обработал другой callback
func (uc *UseCase) reload(ctx context.Context, payment *domain.Payment) (*Response, error) {
	current, err := uc.paymentRepo.GetByPaymentID(ctx, payment.PaymentID)
	if err != nil {
		uc.logger.Error("PaymentCallback: failed to reload payment_id=%s: %v", payment.PaymentID, err)
		return nil, fmt.Errorf("%w: failed to reload payment: %v", ErrInternal, err)
	}
	return uc.alreadyProcessed(current), nil
}

func (uc *UseCase) alreadyProcessed(payment *domain.Payment) *Response {
	uc.logger.Info("PaymentCallback: payment_id=%s already %s", payment.PaymentID, payment.Status)
	return &Response{
		AppointmentID:    payment.AppointmentID,
		PaymentID:        payment.PaymentID,
		Status:           string(payment.Status),
		TransactionID:    payment.TransactionID,
		AlreadyProcessed: true,
	}
}
