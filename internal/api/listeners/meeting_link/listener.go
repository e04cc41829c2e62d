package meeting_link

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-DoctorBookingService/internal/config"
	"github.com/m04kA/SMC-DoctorBookingService/internal/infra/events"
	generateMeetingLink "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/generate_meeting_link"
)

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру
	ErrConnect = errors.New("meeting_link listener: failed to connect")

	// ErrSubscribe возвращается, если не удалось объявить очередь или подписаться
	ErrSubscribe = errors.New("meeting_link listener: failed to subscribe")

	// errMalformed сообщение не удалось разобрать, повтор не поможет
	errMalformed = errors.New("meeting_link listener: malformed message")
)

const consumerTag = "doctor-booking-meeting-link"

// Listener создаёт ссылки на встречи по событиям appointment.confirmed
type Listener struct {
	conn    *amqp.Connection
	channel Channel
	handler EventHandler
	cfg     config.RabbitMQConfig
	logger  Logger

	wg sync.WaitGroup
}

// NewListener подключается к RabbitMQ; при выключенном RabbitMQ возвращает nil, nil
func NewListener(handler EventHandler, cfg config.RabbitMQConfig, logger Logger) (*Listener, error) {
	if !cfg.Enabled {
		logger.Info("RabbitMQ is disabled, meeting link listener will not be started")
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
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

	l := NewListenerWithChannel(channel, handler, cfg, logger)
	l.conn = conn
	return l, nil
}

// NewListenerWithChannel создаёт слушателя поверх открытого канала
func NewListenerWithChannel(channel Channel, handler EventHandler, cfg config.RabbitMQConfig, logger Logger) *Listener {
	return &Listener{
		channel: channel,
		handler: handler,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start объявляет очередь, привязывает её к exchange и начинает обработку
// Обработка прекращается при отмене ctx или закрытии канала
func (l *Listener) Start(ctx context.Context) error {
	if err := l.channel.ExchangeDeclare(
		l.cfg.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("%w: declare exchange %s: %v", ErrSubscribe, l.cfg.Exchange, err)
	}

	queue, err := l.channel.QueueDeclare(
		l.cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("%w: declare queue %s: %v", ErrSubscribe, l.cfg.Queue, err)
	}

	if err := l.channel.QueueBind(queue.Name, l.cfg.RoutingKey, l.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("%w: bind queue %s: %v", ErrSubscribe, queue.Name, err)
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		consumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("%w: consume %s: %v", ErrSubscribe, queue.Name, err)
	}

	l.logger.Info("Meeting link listener started: queue=%s, exchange=%s, routing_key=%s",
		queue.Name, l.cfg.Exchange, l.cfg.RoutingKey)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("Meeting link listener: delivery channel closed")
					return
				}
				l.handleDelivery(ctx, msg)
			}
		}
	}()

	return nil
}

// handleDelivery подтверждает сообщение или возвращает его в очередь один раз
func (l *Listener) handleDelivery(ctx context.Context, msg amqp.Delivery) {
	err := l.processMessage(ctx, msg.Body)
	switch {
	case err == nil:
		_ = msg.Ack(false)

	case errors.Is(err, errMalformed), errors.Is(err, generateMeetingLink.ErrAppointmentNotFound):
		l.logger.Warn("Meeting link listener: dropping message %s: %v", msg.MessageId, err)
		_ = msg.Ack(false)

	case msg.Redelivered:
		l.logger.Error("Meeting link listener: message %s failed after redelivery, dropping: %v", msg.MessageId, err)
		_ = msg.Nack(false, false)

	default:
		l.logger.Warn("Meeting link listener: message %s failed, requeue: %v", msg.MessageId, err)
		_ = msg.Nack(false, true)
	}
}

func (l *Listener) processMessage(ctx context.Context, body []byte) error {
	var event events.AppointmentConfirmed
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	if event.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment_id is required", errMalformed)
	}

	return l.handler.HandleAppointmentConfirmed(ctx, event)
}

// Stop закрывает канал и соединение и ждёт завершения обработчика
func (l *Listener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	err := l.channel.Close()
	l.wg.Wait()

	if l.conn != nil {
		if cerr := l.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
