package events

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DocumentEvent is the message emitted on order/invoice activity so
// back-office consumers can follow terminal sales without polling.
type DocumentEvent struct {
	Kind       string    `json:"kind"`   // order | invoice
	Action     string    `json:"action"` // created | updated | payment
	DocumentID string    `json:"document_id"`
	Total      float64   `json:"total"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher emits document events. Implementations must be safe to call
// from HTTP handlers; failures are the caller's to log, never fatal.
type Publisher interface {
	PublishDocumentEvent(ev DocumentEvent) error
	Close()
}

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher connects to RabbitMQ and declares the document exchange.
func NewPublisher(url, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &amqpPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *amqpPublisher) PublishDocumentEvent(ev DocumentEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.channel.Publish(
		p.exchange,
		ev.Kind+"."+ev.Action,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.Timestamp,
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (p *amqpPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. Used when
// no AMQP URL is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishDocumentEvent(DocumentEvent) error { return nil }
func (noopPublisher) Close()                                   {}
