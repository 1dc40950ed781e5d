package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"epass-service/config"
	"epass-service/internal/logger"

	"github.com/avast/retry-go"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	reconnectDelay = 5 * time.Second
	publishTimeout = 5 * time.Second

	connectAttempts = 5
	connectDelay    = 1 * time.Second
	connectMaxDelay = 10 * time.Second
)

// Publisher hands one serialized event to the broker.
type Publisher interface {
	Publish(ctx context.Context, messageID, routingKey string, body []byte) error
}

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	url     string
	mu      sync.RWMutex
	done    chan struct{}
	log     *logger.Logger
}

// NewRabbitMQ dials the broker, retrying with backoff, and keeps the
// connection alive in the background until Close.
func NewRabbitMQ(cfg config.RabbitMQConfig, log *logger.Logger) (*RabbitMQ, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.User, cfg.Password, cfg.Host, cfg.Port)

	rmq := &RabbitMQ{
		url:  url,
		done: make(chan struct{}),
		log:  log.With("component", "rabbitmq"),
	}

	err := retry.Do(
		rmq.connect,
		retry.Attempts(connectAttempts),
		retry.Delay(connectDelay),
		retry.MaxDelay(connectMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			rmq.log.Warn("connect retry", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	go rmq.handleReconnect()

	return rmq, nil
}

func (r *RabbitMQ) connect() error {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}

	r.conn = conn
	r.channel = channel
	r.log.Info("connected", "exchange", ExchangeName)
	return nil
}

func (r *RabbitMQ) handleReconnect() {
	for {
		r.mu.RLock()
		closed := r.conn.NotifyClose(make(chan *amqp.Error, 1))
		r.mu.RUnlock()

		select {
		case <-r.done:
			return
		case err := <-closed:
			if err != nil {
				r.log.Warn("disconnected", "error", err)
			}

			r.mu.Lock()
			for {
				select {
				case <-r.done:
					r.mu.Unlock()
					return
				default:
				}
				if err := r.connect(); err != nil {
					r.log.Error("reconnect failed", "error", err)
					time.Sleep(reconnectDelay)
					continue
				}
				break
			}
			r.mu.Unlock()
		}
	}
}

// Publish sends a persistent JSON message to the events exchange. messageID
// lets consumers drop duplicates.
func (r *RabbitMQ) Publish(ctx context.Context, messageID, routingKey string, body []byte) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.channel == nil {
		return fmt.Errorf("channel not available")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := r.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Close() {
	close(r.done)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}

	r.log.Info("connection closed")
}
