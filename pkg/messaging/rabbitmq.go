package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/medflow/resume-parser/pkg/config"
	"github.com/medflow/resume-parser/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQ manages the broker connection used for outbound events
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQConfig
	logger  *logger.Logger
	mu      sync.RWMutex
	closed  bool

	// reconnecting is set while Reconnect dials; Channel reports nil meanwhile
	reconnecting bool
}

// New dials the broker and opens a channel
func New(cfg *config.RabbitMQConfig, log *logger.Logger) (*RabbitMQ, error) {
	rmq := &RabbitMQ{
		config: cfg,
		logger: log,
	}

	if err := rmq.connect(); err != nil {
		return nil, err
	}

	return rmq, nil
}

func (r *RabbitMQ) connect() error {
	conn, ch, err := r.dial()
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.conn = conn
	r.channel = ch
	r.mu.Unlock()

	r.logger.Info().Str("exchange", r.config.Exchange).Msg("connected to RabbitMQ")
	return nil
}

// dial opens a connection and a channel without touching shared state
func (r *RabbitMQ) dial() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(r.config.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return conn, ch, nil
}

// Channel returns the current channel, or nil while a reconnect is in flight
func (r *RabbitMQ) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.reconnecting {
		return nil
	}
	return r.channel
}

// PublishWithContext publishes on the current channel, so publishers keep
// working after Reconnect swaps it
func (r *RabbitMQ) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	ch := r.Channel()
	if ch == nil {
		return fmt.Errorf("channel is not open")
	}
	return ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// Close closes the channel and the connection. It is safe to call twice.
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to close channel")
		}
	}

	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}

	r.logger.Info().Msg("RabbitMQ connection closed")
	return nil
}

// Health reports the broker connection state for the health endpoint
func (r *RabbitMQ) Health() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := map[string]string{
		"status": "up",
	}

	switch {
	case r.reconnecting:
		status["status"] = "down"
		status["error"] = "reconnecting"
	case r.conn == nil || r.conn.IsClosed():
		status["status"] = "down"
		status["error"] = "connection closed"
	}

	return status
}

// DeclareExchange declares a durable topic exchange
func (r *RabbitMQ) DeclareExchange(name string) error {
	ch := r.Channel()
	if ch == nil {
		return fmt.Errorf("channel is not open")
	}
	return ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-deleted
		false,   // internal
		false,   // no-wait
		nil,     // arguments
	)
}

// Reconnect re-dials the broker up to MaxRetries times. The lock is only held
// to swap the connection, so publishers fail fast instead of waiting on dials.
func (r *RabbitMQ) Reconnect(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return fmt.Errorf("connection is permanently closed")
	}
	if r.reconnecting {
		r.mu.Unlock()
		return fmt.Errorf("reconnect already in progress")
	}
	r.reconnecting = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.reconnecting = false
		r.mu.Unlock()
	}()

	for i := 0; i < r.config.MaxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.logger.Info().Int("attempt", i+1).Msg("attempting to reconnect to RabbitMQ")

		conn, ch, err := r.dial()
		if err != nil {
			r.logger.Warn().Err(err).Msg("reconnection attempt failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.config.ReconnectDelay):
			}
			continue
		}

		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			conn.Close()
			return fmt.Errorf("connection is permanently closed")
		}
		oldConn := r.conn
		r.conn = conn
		r.channel = ch
		r.mu.Unlock()

		if oldConn != nil && !oldConn.IsClosed() {
			oldConn.Close()
		}

		r.logger.Info().Str("exchange", r.config.Exchange).Msg("reconnected to RabbitMQ")
		return nil
	}

	return fmt.Errorf("failed to reconnect after %d attempts", r.config.MaxRetries)
}

// Watch re-dials the broker whenever the connection drops. It returns when ctx
// is done, the connection is closed by Close, or reconnecting gives up.
func (r *RabbitMQ) Watch(ctx context.Context) {
	for {
		r.mu.RLock()
		conn := r.conn
		r.mu.RUnlock()

		closed := conn.NotifyClose(make(chan *amqp.Error, 1))

		select {
		case <-ctx.Done():
			return
		case amqpErr, ok := <-closed:
			if !ok || amqpErr == nil {
				return
			}
			r.logger.Warn().Str("reason", amqpErr.Reason).Msg("RabbitMQ connection lost")

			if err := r.Reconnect(ctx); err != nil {
				r.logger.Error().Err(err).Msg("giving up on RabbitMQ, events will be dropped")
				return
			}
			if err := r.DeclareExchange(r.config.Exchange); err != nil {
				r.logger.Warn().Err(err).Str("exchange", r.config.Exchange).Msg("failed to redeclare exchange")
			}
		}
	}
}
