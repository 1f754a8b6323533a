// Package publisher announces newly stored posts on a RabbitMQ exchange.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"blog_autopost/internal/domain"
)

const ActionCreate = "create"

type Config struct {
	URL          string
	Exchange     string
	ExchangeType string
	RoutingKey   string
	QueueName    string
}

type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

// PostMessage is the body of a post event.
type PostMessage struct {
	Action    string      `json:"action"`
	RunID     string      `json:"runId,omitempty"`
	Filename  string      `json:"filename"`
	Post      domain.Post `json:"post"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	if cfg.ExchangeType == "" {
		cfg.ExchangeType = amqp.ExchangeDirect
	}
	logger = logger.With("component", "publisher")

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
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
		logger:     logger,
	}, nil
}

// declareTopology declares a durable exchange and, when a queue name is set,
// a durable queue bound to it with the routing key.
func declareTopology(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, cfg.ExchangeType, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if cfg.QueueName == "" {
		return nil
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// PublishCreated sends a persistent "create" event for a stored post.
func (r *RabbitMQ) PublishCreated(ctx context.Context, runID string, post *domain.Post) error {
	now := time.Now().UTC()
	msg := PostMessage{
		Action:    ActionCreate,
		RunID:     runID,
		Filename:  post.Filename(),
		Post:      *post,
		Timestamp: now,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			MessageId:     uuid.NewString(),
			CorrelationId: runID,
			DeliveryMode:  amqp.Persistent,
			ContentType:   "application/json",
			Body:          body,
			Timestamp:     now,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published post event", "post_id", post.ID, "action", ActionCreate)
	return nil
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
