package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

var queues = []string{shared.EventBookingConfirmed, shared.EventBookingFailed}

// AMQPPublisher sends booking events to durable queues named after the event
// type, through the default exchange.
type AMQPPublisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return errs.Wrap(err, "rabbitmq dial failed")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "rabbitmq channel open failed")
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return errs.Wrapf(err, "rabbitmq queue declare failed: %s", q)
		}
	}
	p.conn = conn
	p.ch = ch
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event shared.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "marshal booking event")
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}

	if err := p.ch.PublishWithContext(ctx, "", event.Type, false, false, msg); err != nil {
		return errs.Wrapf(err, "rabbitmq publish failed: %s", event.Type)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher drops events; used when no broker URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, event shared.BookingEvent) error {
	slog.Debug("event publishing disabled", "type", event.Type, "payment_reference", event.PaymentReference)
	return nil
}
