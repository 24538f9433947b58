// Package transport defines the pub/sub transport contract consumed by
// agentlink nodes.
//
// A Transport owns its own connection lifecycle, delivery threads and
// quality-of-service semantics; the node layer treats it as a given
// capability. Subscribed handlers are invoked on the transport's delivery
// goroutine(s) with the raw topic and JSON payload bytes.
package transport

// QOS is a delivery-quality token. It follows the common pub/sub levels
// but is otherwise opaque to the node layer, which passes it through to
// the transport unchanged.
type QOS byte

const (
	// AtMostOnce delivers a message at most once (fire and forget).
	AtMostOnce QOS = 0
	// AtLeastOnce delivers a message at least once (may duplicate).
	AtLeastOnce QOS = 1
	// ExactlyOnce delivers a message exactly once.
	ExactlyOnce QOS = 2
)

// MessageHandler receives an inbound message for a subscribed topic.
type MessageHandler func(topic string, payload []byte)

// Transport is the pub/sub collaborator contract. Implementations are
// responsible for connection management, authentication, TLS, delivery
// guarantees and reconnection; none of that leaks into the node layer.
type Transport interface {
	// Connect establishes the connection to the broker.
	Connect() error

	// Disconnect tears the connection down.
	Disconnect() error

	// Subscribe registers a handler for a topic.
	Subscribe(topic string, handler MessageHandler, qos QOS) error

	// Unsubscribe removes the subscription for a topic.
	Unsubscribe(topic string) error

	// Publish sends a payload to a topic.
	Publish(topic string, payload []byte, qos QOS) error
}
