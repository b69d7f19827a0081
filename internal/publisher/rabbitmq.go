package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"noteflow/internal/scheduler"
)

// RabbitMQ publishes scheduler cycle outcomes to a topic exchange.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	// One queue receives the outcomes of every job.
	err = ch.QueueBind(
		q.Name,
		cfg.RoutingKey+".#",
		cfg.Exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("component", "publisher"),
	}, nil
}

type OutcomeMessage struct {
	Job        string    `json:"job"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Result     any       `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewOutcomeMessage(o scheduler.Outcome) OutcomeMessage {
	msg := OutcomeMessage{
		Job:        o.Job,
		StartedAt:  o.StartedAt.UTC(),
		DurationMS: o.Duration.Milliseconds(),
		Result:     o.Result,
		Timestamp:  time.Now().UTC(),
	}
	if o.Err != nil {
		msg.Error = o.Err.Error()
	}
	return msg
}

// RoutingKey returns the key an outcome of job is published with.
func (r *RabbitMQ) RoutingKey(job string) string {
	return r.routingKey + "." + job
}

func (r *RabbitMQ) PublishOutcome(ctx context.Context, outcome scheduler.Outcome) error {
	body, err := json.Marshal(NewOutcomeMessage(outcome))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.RoutingKey(outcome.Job),
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published outcome",
		"job", outcome.Job,
		"failed", outcome.Err != nil,
	)

	return nil
}

// Observer returns a scheduler observer that publishes every outcome.
// Publishing failures are logged and otherwise ignored.
func (r *RabbitMQ) Observer(ctx context.Context, timeout time.Duration) func(scheduler.Outcome) {
	return func(outcome scheduler.Outcome) {
		pubCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := r.PublishOutcome(pubCtx, outcome); err != nil {
			r.logger.Warn("publish outcome failed", "job", outcome.Job, "error", err)
		}
	}
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
