// Package rabbitmq publishes domain events to a durable topic exchange,
// one routing key per event type.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/pkg/id"
)

const (
	publishTimeout = 5 * time.Second
	reconnectDelay = 5 * time.Second
)

// Publisher holds one connection and channel and re-dials after the broker
// drops them.
type Publisher struct {
	mu           sync.RWMutex
	conn         *amqp.Connection
	channel      *amqp.Channel
	exchangeName string
	url          string
	done         chan struct{}
}

func NewPublisher(url, exchangeName string) (*Publisher, error) {
	p := &Publisher{exchangeName: exchangeName, url: url, done: make(chan struct{})}
	if err := p.connect(); err != nil {
		return nil, err
	}
	go p.handleReconnect()

	log.Info().Str("exchange", exchangeName).Msg("rabbitmq publisher initialized")
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		p.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	p.mu.Lock()
	p.conn, p.channel = conn, channel
	p.mu.Unlock()
	return nil
}

// Publish sends e as JSON with e.Type as the routing key.
func (p *Publisher) Publish(ctx context.Context, e domain.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.RLock()
	channel := p.channel
	p.mu.RUnlock()

	err = channel.PublishWithContext(ctx,
		p.exchangeName, // exchange
		e.Type,         // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    e.OccurredAt,
			MessageId:    id.New(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}

	log.Debug().
		Str("routing_key", e.Type).
		Str("exchange", p.exchangeName).
		Int("body_size", len(body)).
		Msg("event published")
	return nil
}

func (p *Publisher) handleReconnect() {
	for {
		p.mu.RLock()
		closeChan := p.conn.NotifyClose(make(chan *amqp.Error, 1))
		p.mu.RUnlock()

		select {
		case <-p.done:
			return
		case closeErr, ok := <-closeChan:
			if !ok || closeErr == nil {
				return
			}
			log.Error().Err(closeErr).Msg("rabbitmq connection closed, reconnecting")
		}

		for {
			select {
			case <-p.done:
				return
			case <-time.After(reconnectDelay):
			}
			if err := p.connect(); err != nil {
				log.Error().Err(err).Msg("rabbitmq reconnect failed")
				continue
			}
			log.Info().Msg("reconnected to rabbitmq")
			break
		}
	}
}

// HealthCheck verifies the connection is usable.
func (p *Publisher) HealthCheck() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	if p.channel == nil {
		return errors.New("rabbitmq channel is nil")
	}
	return nil
}

func (p *Publisher) Close() error {
	close(p.done)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close rabbitmq channel")
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}
	log.Info().Msg("rabbitmq publisher closed")
	return nil
}

// LogPublisher stands in for Publisher when no broker is configured. Events
// are only written to the log.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, e domain.Event) error {
	log.Debug().
		Str("type", e.Type).
		Str("item_id", e.ItemID).
		Str("claim_id", e.ClaimID).
		Str("user_id", e.UserID).
		Msg("event")
	return nil
}

func (LogPublisher) HealthCheck() error { return nil }

func (LogPublisher) Close() error { return nil }
