// AngelaMos | 2026
// rabbitmq.go

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/carterperez-dev/asset-management/internal/config"
)

var ErrBrokerClosed = errors.New("broker connection closed")

// Connect dials the broker up to retries times, waiting delay between
// attempts.
func Connect(url string, retries int, delay time.Duration) (*amqp.Connection, error) {
	return connect(amqp.Dial, time.Sleep, url, retries, delay)
}

func connect(
	dial func(string) (*amqp.Connection, error),
	sleep func(time.Duration),
	url string,
	retries int,
	delay time.Duration,
) (*amqp.Connection, error) {
	const op = "events.Connect"

	if retries < 1 {
		retries = 1
	}

	var err error
	for attempt := 1; ; attempt++ {
		var conn *amqp.Connection
		conn, err = dial(url)
		if err == nil {
			return conn, nil
		}
		if attempt == retries {
			break
		}
		sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// AMQPPublisher publishes persistent JSON envelopes to a durable direct
// exchange, routed by event type.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
}

func NewAMQPPublisher(cfg config.BrokerConfig) (*AMQPPublisher, error) {
	const op = "events.NewAMQPPublisher"

	conn, err := Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close() //nolint:errcheck // cleanup on setup failure
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = conn.Close() //nolint:errcheck // cleanup on setup failure
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &AMQPPublisher{
		conn:     conn,
		ch:       ch,
		exchange: cfg.Exchange,
	}, nil
}

func (p *AMQPPublisher) Publish(_ context.Context, eventType string, payload any) error {
	const op = "events.Publish"

	body, err := json.Marshal(NewEnvelope(eventType, payload))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Ping reports the connection state for readiness probes.
func (p *AMQPPublisher) Ping(context.Context) error {
	if p.conn == nil || p.conn.IsClosed() {
		return ErrBrokerClosed
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close() //nolint:errcheck // connection close follows
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
