package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"wardmap.xyz/ward-track-service/pkg/models"
)

const publishTimeout = 5 * time.Second

// PublishChannel is the slice of amqp091.Channel publishing needs.
type PublishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher writes application envelopes into the topology. It
// implements guard.ApplicationPublisher.
type Publisher struct {
	ch PublishChannel
}

func NewPublisher(ch PublishChannel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishSubmission enqueues a fresh submission for processing.
func (p *Publisher) PublishSubmission(msg *models.ApplicationMessage) error {
	return p.publish(ApplyRoutingKey, msg)
}

// PublishRetry routes the envelope through the delayed retry queue;
// it re-enters the work queue after the retry delay.
func (p *Publisher) PublishRetry(msg *models.ApplicationMessage) error {
	return p.publish(ApplyRetryRoutingKey, msg)
}

func (p *Publisher) publish(routingKey string, msg *models.ApplicationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(ctx, ApplyExchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}
