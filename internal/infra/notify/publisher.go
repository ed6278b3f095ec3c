package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lashdiary/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher publishes persistent JSON messages to a durable topic
// exchange. A broken connection is dropped and redialled on the next publish.
type AMQPPublisher struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url, exchange string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, exchange: exchange, logger: logger}
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.reset()
		return errs.Wrap(err, "publish "+routingKey)
	}
	return nil
}

func (p *AMQPPublisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return errs.Wrap(err, "declare exchange")
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && p.logger != nil {
			p.logger.Debug("rabbitmq connection close failed", "error", err.Error())
		}
		p.conn = nil
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// LogPublisher stands in when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.logger.InfoContext(ctx, "event publish skipped, no broker configured", "routing_key", routingKey, "bytes", len(body))
	return nil
}
