package events

import (
	"context"
)

// HandlerFunc обработчик события подтверждения
type HandlerFunc func(ctx context.Context, event AppointmentConfirmed) error

// InlinePublisher доставляет события в процессе, когда брокер отключён.
// Обработчик выполняется в отдельной горутине и не влияет на результат публикации
type InlinePublisher struct {
	handler HandlerFunc
	logger  Logger
}

// NewInlinePublisher создает издателя без брокера
func NewInlinePublisher(handler HandlerFunc, logger Logger) *InlinePublisher {
	return &InlinePublisher{handler: handler, logger: logger}
}

// PublishAppointmentConfirmed запускает обработчик асинхронно
func (p *InlinePublisher) PublishAppointmentConfirmed(ctx context.Context, event AppointmentConfirmed) error {
	if p.handler == nil {
		return nil
	}

	go func() {
		if err := p.handler(context.WithoutCancel(ctx), event); err != nil {
			p.logger.Warn("Inline %s handler failed: appointment_id=%d, error=%v", AppointmentConfirmedType, event.AppointmentID, err)
		}
	}()

	return nil
}

// Close ничего не делает
func (p *InlinePublisher) Close() error {
	return nil
}
