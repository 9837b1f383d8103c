// Package queue carries the application workflow over RabbitMQ: a
// direct exchange feeding the work queue, a delayed retry queue that
// dead-letters back into the exchange, and a terminal dead-letter
// queue for messages past rescue.
package queue

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ApplyExchange        = "apply_exchange"
	ApplyQueue           = "apply_queue"
	ApplyRoutingKey      = "apply_routing_key"
	ApplyRetryQueue      = "apply_retry_queue"
	ApplyRetryRoutingKey = "apply_retry_routing_key"

	DlxExchange   = "dlx.apply_exchange"
	DlxQueue      = "dlx.apply_queue"
	DlxRoutingKey = "dlx.apply_routing_key"

	// MaxRetryCount bounds delayed redeliveries of one message.
	MaxRetryCount = 3

	applyMessageTTLMillis = 60000
	retryDelayMillis      = 30000
)

// TopologyChannel is the slice of amqp091.Channel that topology
// declaration needs.
type TopologyChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// DeclareTopology sets up the exchanges, queues and bindings. Safe to
// call on every startup; declarations are idempotent as long as the
// arguments do not change.
func DeclareTopology(ch TopologyChannel) error {
	if err := ch.ExchangeDeclare(ApplyExchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(DlxExchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	// undeliverable or expired work falls through to the dead-letter pair
	if _, err := ch.QueueDeclare(ApplyQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    DlxExchange,
		"x-dead-letter-routing-key": DlxRoutingKey,
		"x-message-ttl":             int32(applyMessageTTLMillis),
	}); err != nil {
		return err
	}
	if err := ch.QueueBind(ApplyQueue, ApplyRoutingKey, ApplyExchange, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(DlxQueue, true, false, false, false, amqp.Table{
		"x-queue-mode": "lazy",
	}); err != nil {
		return err
	}
	if err := ch.QueueBind(DlxQueue, DlxRoutingKey, DlxExchange, false, nil); err != nil {
		return err
	}

	// the retry queue has no consumer: messages sit out the delay and
	// dead-letter straight back into the work queue
	if _, err := ch.QueueDeclare(ApplyRetryQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    ApplyExchange,
		"x-dead-letter-routing-key": ApplyRoutingKey,
		"x-message-ttl":             int32(retryDelayMillis),
	}); err != nil {
		return err
	}
	if err := ch.QueueBind(ApplyRetryQueue, ApplyRetryRoutingKey, ApplyExchange, false, nil); err != nil {
		return err
	}

	return nil
}
