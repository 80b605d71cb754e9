// Package events publishes booking lifecycle changes to RabbitMQ for the
// receipt and reporting consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"hotel-folio/billing"
	"hotel-folio/utils"
)

const (
	ExchangeName = "hotel.bookings"
	ExchangeKind = "topic"

	BookingReserved   = "booking.reserved"
	BookingCheckedIn  = "booking.checked_in"
	BookingCheckedOut = "booking.checked_out"
	BookingCancelled  = "booking.cancelled"
)

// BookingEvent is the message body for every booking.* routing key.
type BookingEvent struct {
	BookingID     uint                    `json:"booking_id"`
	ReferenceCode string                  `json:"reference_code"`
	RoomID        uint                    `json:"room_id"`
	Status        billing.LifecycleStatus `json:"status"`
	Stay          billing.Stay            `json:"stay"`
	Breakdown     billing.ChargeBreakdown `json:"breakdown"`
	OccurredAt    time.Time               `json:"occurred_at"`
}

type Publisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	utils.GetLogger().Debug("published booking event",
		zap.String("exchange", ExchangeName),
		zap.String("routing_key", routingKey),
	)
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
