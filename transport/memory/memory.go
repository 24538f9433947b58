// Package memory provides an in-process pub/sub broker implementing the
// transport contract. It is intended for tests and local demos: delivery
// is synchronous, topics are matched exactly, and nothing is persisted.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/agentlink/agentlink/transport"
)

// ErrNotConnected is returned when a client operation is attempted before
// Connect or after Disconnect.
var ErrNotConnected = errors.New("memory: client not connected")

// Broker is an in-process message broker. Publishing delivers the payload
// synchronously to every connected subscriber of the exact topic,
// including the publisher's own subscriptions, matching how a real broker
// echoes messages back to a subscribed publisher.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[*Client]transport.MessageHandler
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*Client]transport.MessageHandler)}
}

// Client returns a new, unconnected transport client bound to the broker.
func (b *Broker) Client() *Client {
	return &Client{broker: b}
}

func (b *Broker) subscribe(c *Client, topic string, handler transport.MessageHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*Client]transport.MessageHandler)
	}
	b.subs[topic][c] = handler
}

func (b *Broker) unsubscribe(c *Client, topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[topic], c)
}

func (b *Broker) dropClient(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, clients := range b.subs {
		delete(clients, c)
	}
}

func (b *Broker) deliver(topic string, payload []byte) {
	b.mu.RLock()
	handlers := make([]transport.MessageHandler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(topic, payload)
	}
}

// Client is a broker-attached transport. It implements
// [transport.Transport]. QOS values are accepted and ignored; in-process
// delivery is always exactly once.
type Client struct {
	broker *Broker

	mu        sync.Mutex
	connected bool
	topics    map[string]struct{}
}

var _ transport.Transport = (*Client)(nil)

// Connect marks the client connected.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = true
	if c.topics == nil {
		c.topics = make(map[string]struct{})
	}
	return nil
}

// Disconnect removes all of the client's subscriptions and marks it
// disconnected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	c.connected = false
	c.topics = make(map[string]struct{})
	c.mu.Unlock()

	c.broker.dropClient(c)
	return nil
}

// Subscribe registers a handler for an exact topic.
func (c *Client) Subscribe(topic string, handler transport.MessageHandler, _ transport.QOS) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return fmt.Errorf("subscribe %q: %w", topic, ErrNotConnected)
	}
	c.topics[topic] = struct{}{}
	c.mu.Unlock()

	c.broker.subscribe(c, topic, handler)
	return nil
}

// Unsubscribe removes the subscription for a topic.
func (c *Client) Unsubscribe(topic string) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return fmt.Errorf("unsubscribe %q: %w", topic, ErrNotConnected)
	}
	delete(c.topics, topic)
	c.mu.Unlock()

	c.broker.unsubscribe(c, topic)
	return nil
}

// Publish delivers the payload synchronously to every subscriber of the
// topic.
func (c *Client) Publish(topic string, payload []byte, _ transport.QOS) error {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return fmt.Errorf("publish %q: %w", topic, ErrNotConnected)
	}

	c.broker.deliver(topic, payload)
	return nil
}
