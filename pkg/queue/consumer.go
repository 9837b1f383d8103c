package queue

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/guard"
	"wardmap.xyz/ward-track-service/pkg/models"
)

// ConsumeChannel is the slice of amqp091.Channel consuming needs.
type ConsumeChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Acker is the per-delivery acknowledgement surface; amqp091.Delivery
// satisfies it.
type Acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Consumer drains the work queue and drives the workflow engine.
//
// Outcome routing:
//   - success or ErrNotFound: ack (a missing application will never
//     appear by retrying)
//   - ErrRecoverable under the retry budget: republish through the
//     delayed retry queue with the count bumped, then ack the original
//   - ErrRecoverable past the budget, or any other failure: nack
//     without requeue, which dead-letters the message
type Consumer struct {
	ch        ConsumeChannel
	workflow  guard.IApplication
	publisher *Publisher
}

func NewConsumer(ch ConsumeChannel, workflow guard.IApplication, publisher *Publisher) *Consumer {
	return &Consumer{ch: ch, workflow: workflow, publisher: publisher}
}

func (c *Consumer) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameWorkflow,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryApplication),
	)
}

// Run consumes until the context is cancelled or the delivery channel
// closes (connection loss).
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.Consume(ApplyQueue, "ward-track-workflow", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.logger().Info("Workflow consumer started", zap.String("queue", ApplyQueue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.Handle(d.Body, d)
		}
	}
}

// Handle processes one delivery body and settles it on ack.
func (c *Consumer) Handle(body []byte, ack Acker) {
	logger := c.logger()

	var msg models.ApplicationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		logger.Error("Malformed application envelope, dead-lettering", zap.Error(err))
		_ = ack.Nack(false, false)
		return
	}

	logger.Info("Processing application submission",
		zap.Uint("application_id", msg.ApplicationID),
		zap.Int64("guardian_id", msg.GuardianID),
		zap.String("ward_device_id", msg.WardDeviceID),
		zap.Int("retry_count", msg.RetryCount))

	err := c.workflow.ProcessSubmission(&msg)
	switch {
	case err == nil:
		_ = ack.Ack(false)

	case errors.Is(err, guard.ErrNotFound):
		logger.Warn("Application not found, dropping message", zap.Error(err))
		_ = ack.Ack(false)

	case errors.Is(err, guard.ErrRecoverable):
		if msg.RetryCount >= MaxRetryCount {
			logger.Error("Retry budget exhausted, dead-lettering",
				zap.Uint("application_id", msg.ApplicationID),
				zap.Int("retry_count", msg.RetryCount),
				zap.Error(err))
			_ = ack.Nack(false, false)
			return
		}

		retry := msg
		retry.RetryCount++
		if perr := c.publisher.PublishRetry(&retry); perr != nil {
			// cannot schedule the retry, let the broker dead-letter it
			logger.Error("Failed to schedule retry, dead-lettering",
				zap.Uint("application_id", msg.ApplicationID),
				zap.Error(perr))
			_ = ack.Nack(false, false)
			return
		}

		logger.Info("Scheduled delayed retry",
			zap.Uint("application_id", msg.ApplicationID),
			zap.Int("retry_count", retry.RetryCount))
		_ = ack.Ack(false)

	default:
		logger.Error("Unrecoverable workflow failure, dead-lettering",
			zap.Uint("application_id", msg.ApplicationID),
			zap.Error(err))
		_ = ack.Nack(false, false)
	}
}
