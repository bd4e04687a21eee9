package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const activityQueueName = "cheapies.activity"

// Publisher sends activity events.  Failures never reach HTTP callers.
type Publisher interface {
	Publish(ctx context.Context, ev ActivityEvent) error
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ActivityEvent) error { return nil }

// AMQPPublisher dials the broker per message.  Event volume is a handful of
// listing writes, so there is no channel pool.
type AMQPPublisher struct {
	url string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// Publish publishes the event to the durable activity queue as a persistent
// message.
func (p *AMQPPublisher) Publish(ctx context.Context, ev ActivityEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		activityQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(ev.Stamp(time.Now()))
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                // default exchange
		activityQueueName, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// PublishAsync sends the event in the background with a 3s budget and logs
// failures.
func PublishAsync(p Publisher, ev ActivityEvent) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.Publish(ctx, ev.Stamp(time.Now())); err != nil {
			log.Warn().Err(err).Str("event", ev.Type).Msg("activity publish failed")
		}
	}()
}
