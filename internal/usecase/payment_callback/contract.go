package payment_callback

import (
	"context"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/infra/events"
	"github.com/m04kA/SMC-DoctorBookingService/internal/integrations/paymentgateway"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdatePayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, transition *domain.StatusTransition) error
}

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error)
	MarkCompleted(ctx context.Context, id int64, transactionID string) error
	MarkFailed(ctx context.Context, id int64) error
}

// PaymentGateway интерфейс клиента платёжного шлюза
type PaymentGateway interface {
	ExecutePayment(ctx context.Context, paymentID string) (*paymentgateway.ExecutePaymentResponse, error)
}

// EventPublisher интерфейс публикации событий записей
type EventPublisher interface {
	PublishAppointmentConfirmed(ctx context.Context, event events.AppointmentConfirmed) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
