package queue

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type declaredQueue struct {
	name string
	args amqp.Table
}

type declaredBinding struct {
	queue    string
	key      string
	exchange string
}

type fakeTopologyChannel struct {
	exchanges []string
	queues    []declaredQueue
	bindings  []declaredBinding
}

func (f *fakeTopologyChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.exchanges = append(f.exchanges, name)
	return nil
}

func (f *fakeTopologyChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.queues = append(f.queues, declaredQueue{name: name, args: args})
	return amqp.Queue{Name: name}, nil
}

func (f *fakeTopologyChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	f.bindings = append(f.bindings, declaredBinding{queue: name, key: key, exchange: exchange})
	return nil
}

func (f *fakeTopologyChannel) queueArgs(name string) amqp.Table {
	for _, q := range f.queues {
		if q.name == name {
			return q.args
		}
	}
	return nil
}

func TestDeclareTopology(t *testing.T) {
	ch := &fakeTopologyChannel{}
	assert.NoError(t, DeclareTopology(ch))

	assert.ElementsMatch(t, []string{ApplyExchange, DlxExchange}, ch.exchanges)

	// expired or rejected work drains into the dead-letter pair
	applyArgs := ch.queueArgs(ApplyQueue)
	assert.Equal(t, DlxExchange, applyArgs["x-dead-letter-exchange"])
	assert.Equal(t, DlxRoutingKey, applyArgs["x-dead-letter-routing-key"])

	// the retry queue loops back into the work queue after its delay
	retryArgs := ch.queueArgs(ApplyRetryQueue)
	assert.Equal(t, ApplyExchange, retryArgs["x-dead-letter-exchange"])
	assert.Equal(t, ApplyRoutingKey, retryArgs["x-dead-letter-routing-key"])

	assert.Contains(t, ch.bindings, declaredBinding{
		queue: ApplyQueue, key: ApplyRoutingKey, exchange: ApplyExchange})
	assert.Contains(t, ch.bindings, declaredBinding{
		queue: ApplyRetryQueue, key: ApplyRetryRoutingKey, exchange: ApplyExchange})
	assert.Contains(t, ch.bindings, declaredBinding{
		queue: DlxQueue, key: DlxRoutingKey, exchange: DlxExchange})
}
