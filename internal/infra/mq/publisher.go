package mq

import (
	"context"
	"sync"

	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// Publisher sends outbox jobs to a topic exchange, routed by job topic.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial amqp")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open amqp channel")
	}
	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrapf(err, "failed to declare exchange %s", exchange)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, job shared.NotificationJob) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID.String(),
		Timestamp:    job.CreatedAt,
		Type:         job.Topic,
		Headers:      Headers(job),
		Body:         job.Payload,
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, p.exchange, job.Topic, false, false, msg); err != nil {
		return errs.Wrapf(err, "failed to publish %s", job.Topic)
	}
	return nil
}

// Headers carries the routing metadata consumers use to pick a recipient.
func Headers(job shared.NotificationJob) amqp.Table {
	h := amqp.Table{
		"kind":     string(job.Kind),
		"attempts": int32(job.Attempts),
	}
	if job.RecipientID != nil {
		h["recipient_id"] = job.RecipientID.String()
	}
	return h
}

func (p *Publisher) Close() error {
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
