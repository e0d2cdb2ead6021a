package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"venue-booking/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "events"
	ExchangeKind = "topic"

	RouteBookingCreated     = "booking.created"
	RouteBookingUpdated     = "booking.updated"
	RouteBookingRescheduled = "booking.rescheduled"
	RouteBookingCancelled   = "booking.cancelled"
	RouteBookingSettled     = "booking.settled"
	RouteSessionExpired     = "session.expired"
)

// Publisher pushes booking lifecycle notifications to RabbitMQ. A nil
// Publisher is valid and drops every message, so callers never have to guard
// for a broker that was not configured.
type Publisher struct {
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

// BookingMessage is the payload published on every booking route.
type BookingMessage struct {
	EventID     uint      `json:"event_id"`
	CompanyName string    `json:"company_name"`
	StartAt     time.Time `json:"start_at"`
	Status      string    `json:"status"`
	Actor       string    `json:"actor"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (p *Publisher) Publish(routingKey string, payload any) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if err := p.channel.Publish(
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.Info(fmt.Sprintf("published to %s/%s: %s", ExchangeName, routingKey, string(body)))
	return nil
}

// PublishBooking is Publish with the standard booking payload, logged instead
// of returned on failure so a broker outage never fails the request.
func (p *Publisher) PublishBooking(routingKey string, msg BookingMessage) {
	if p == nil {
		return
	}
	msg.OccurredAt = time.Now().UTC()
	if err := p.Publish(routingKey, msg); err != nil {
		logger.Warning(fmt.Sprintf("notify %s failed: %v", routingKey, err))
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
