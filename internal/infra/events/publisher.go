package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует события записей в topic exchange RabbitMQ
type Publisher struct {
	conn       *amqp.Connection
	channel    Channel
	exchange   string
	routingKey string
	logger     Logger
}

// Dial подключается к брокеру и объявляет exchange
func Dial(url, exchange, routingKey string, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("Failed to open RabbitMQ channel: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	p, err := NewPublisher(channel, exchange, routingKey, logger)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisher создает издателя поверх открытого канала
func NewPublisher(channel Channel, exchange, routingKey string, logger Logger) (*Publisher, error) {
	err := channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return &Publisher{
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
	}, nil
}

// PublishAppointmentConfirmed отправляет событие подтверждения записи
func (p *Publisher) PublishAppointmentConfirmed(ctx context.Context, event AppointmentConfirmed) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Type:         AppointmentConfirmedType,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		p.logger.Error("Failed to publish %s: appointment_id=%d, error=%v", AppointmentConfirmedType, event.AppointmentID, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.logger.Info("Published %s: appointment_id=%d, event_id=%s", AppointmentConfirmedType, event.AppointmentID, event.EventID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}

	if err := p.channel.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
