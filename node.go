package agentlink

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentlink/agentlink/a2a"
	"github.com/agentlink/agentlink/transport"
)

// Node is one agent's presence in a room. It joins the room's topics
// through a pub/sub transport, normalizes inbound payloads into Messages,
// runs registered handlers in order, and translates their responses back
// into the correct wire format and destination.
//
// Register all handlers before calling Join; the handler list is not
// meant to be mutated while dispatch is in flight.
type Node struct {
	transport transport.Transport
	roomID    string
	agentID   string
	qos       transport.QOS
	logger    *slog.Logger

	respondToGroup  bool
	respondToDirect bool

	groupTopic  string
	directTopic string

	mu       sync.Mutex
	joined   bool
	handlers []Handler
}

// New creates a node on the given transport. Room and agent ids default
// to generated UUIDs when not set through options.
func New(t transport.Transport, opts ...Option) *Node {
	n := &Node{
		transport:       t,
		roomID:          uuid.NewString(),
		agentID:         uuid.NewString(),
		qos:             transport.AtLeastOnce,
		logger:          slog.Default(),
		respondToGroup:  true,
		respondToDirect: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.groupTopic = GroupTopic(n.roomID)
	n.directTopic = DirectTopic(n.roomID, n.agentID)
	return n
}

// RoomID returns the node's room id.
func (n *Node) RoomID() string { return n.roomID }

// AgentID returns the node's own agent id.
func (n *Node) AgentID() string { return n.agentID }

// AddHandler appends a handler to the dispatch list. Handlers run in
// registration order for every accepted inbound message; there is no
// removal.
func (n *Node) AddHandler(h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, h)
}

// Join connects the transport and subscribes to the room's group topic
// and the node's own direct topic, as enabled. Joining while already
// joined is a no-op.
func (n *Node) Join() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.joined {
		n.logger.Info("already joined the room", "room", n.roomID)
		return nil
	}

	if err := n.transport.Connect(); err != nil {
		return fmt.Errorf("agentlink: connect: %w", err)
	}

	if n.respondToGroup {
		n.logger.Info("subscribing to group messages", "topic", n.groupTopic)
		if err := n.transport.Subscribe(n.groupTopic, n.handleInbound, n.qos); err != nil {
			n.transport.Disconnect()
			return fmt.Errorf("agentlink: subscribe %q: %w", n.groupTopic, err)
		}
	}
	if n.respondToDirect {
		n.logger.Info("subscribing to direct messages", "topic", n.directTopic)
		if err := n.transport.Subscribe(n.directTopic, n.handleInbound, n.qos); err != nil {
			n.transport.Disconnect()
			return fmt.Errorf("agentlink: subscribe %q: %w", n.directTopic, err)
		}
	}

	n.joined = true
	return nil
}

// Leave unsubscribes from the room's topics and disconnects the
// transport. Leaving while not joined is a no-op.
func (n *Node) Leave() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.joined {
		n.logger.Info("not in a room")
		return nil
	}

	if n.respondToGroup {
		if err := n.transport.Unsubscribe(n.groupTopic); err != nil {
			n.logger.Error("failed to unsubscribe", "topic", n.groupTopic, "error", err)
		}
	}
	if n.respondToDirect {
		if err := n.transport.Unsubscribe(n.directTopic); err != nil {
			n.logger.Error("failed to unsubscribe", "topic", n.directTopic, "error", err)
		}
	}

	n.joined = false
	if err := n.transport.Disconnect(); err != nil {
		return fmt.Errorf("agentlink: disconnect: %w", err)
	}
	return nil
}

// SendMessage publishes content as a legacy chat payload. The default
// audience is the whole room; use ToAgent to send directly. It returns
// the generated message id.
func (n *Node) SendMessage(content any, opts ...SendOption) (string, error) {
	if !n.isJoined() {
		return "", ErrNotJoined
	}

	cfg := sendOptions{audience: AudienceEveryone}
	for _, opt := range opts {
		opt(&cfg)
	}
	return n.publishLegacy(content, cfg.audience, cfg.recipientID, cfg.inReplyTo)
}

// SendA2ARequest wraps msg in a message/send JSON-RPC request and
// publishes it. The default audience is direct, which requires ToAgent;
// use ToEveryone to broadcast. It returns the request id (a string, or
// whatever WithRequestID supplied).
func (n *Node) SendA2ARequest(msg a2a.Message, opts ...SendOption) (any, error) {
	if !n.isJoined() {
		return nil, ErrNotJoined
	}
	if !msg.Role.Valid() {
		return nil, ErrInvalidRole
	}

	cfg := sendOptions{audience: AudienceDirect}
	for _, opt := range opts {
		opt(&cfg)
	}

	topic, err := resolveOutgoingTopic(n.roomID, cfg.audience, cfg.recipientID)
	if err != nil {
		return nil, err
	}

	msg = applyMessageOptions(msg, cfg)

	req := a2a.SendMessageRequest{
		JSONRPC: a2a.Version,
		ID:      cfg.requestID,
		Method:  a2a.MethodMessageSend,
		Params: a2a.SendParams{
			Message:       msg,
			Configuration: cfg.configuration,
			Metadata:      cfg.requestMetadata,
		},
	}
	if req.ID == nil {
		req.ID = uuid.NewString()
	}

	raw, err := json.Marshal(req.ToMap())
	if err != nil {
		return nil, fmt.Errorf("agentlink: encode request: %w", err)
	}
	if err := n.transport.Publish(topic, raw, n.qos); err != nil {
		return nil, fmt.Errorf("agentlink: publish %q: %w", topic, err)
	}

	n.logger.Debug("sent A2A request", "request_id", req.ID, "topic", topic)
	return req.ID, nil
}

// applyMessageOptions folds send-option overrides into the outgoing
// message without mutating the caller's value maps.
func applyMessageOptions(msg a2a.Message, cfg sendOptions) a2a.Message {
	if len(cfg.messageMetadata) > 0 {
		merged := make(map[string]any, len(msg.Metadata)+len(cfg.messageMetadata))
		for k, v := range msg.Metadata {
			merged[k] = v
		}
		for k, v := range cfg.messageMetadata {
			merged[k] = v
		}
		msg.Metadata = merged
	}
	if cfg.extensions != nil {
		msg.Extensions = cfg.extensions
	}
	if cfg.referenceIDs != nil {
		msg.ReferenceTaskIDs = cfg.referenceIDs
	}
	if cfg.taskID != "" {
		msg.TaskID = cfg.taskID
	}
	if cfg.contextID != "" {
		msg.ContextID = cfg.contextID
	}
	if cfg.messageID != "" {
		msg.MessageID = cfg.messageID
	}
	return msg
}

// publishLegacy builds and publishes a legacy chat payload, returning the
// message id.
func (n *Node) publishLegacy(content any, audience Audience, recipientID, inReplyTo string) (string, error) {
	topic, err := resolveOutgoingTopic(n.roomID, audience, recipientID)
	if err != nil {
		return "", err
	}

	messageID := uuid.NewString()
	payload := map[string]any{
		"sender_id":  n.agentID,
		"content":    content,
		"timestamp":  unixSeconds(time.Now()),
		"message_id": messageID,
		"audience":   string(audience),
	}
	if inReplyTo != "" {
		payload["in_reply_to"] = inReplyTo
	}
	if recipientID != "" {
		payload["recipient_id"] = recipientID
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("agentlink: encode message: %w", err)
	}
	if err := n.transport.Publish(topic, raw, n.qos); err != nil {
		return "", fmt.Errorf("agentlink: publish %q: %w", topic, err)
	}

	n.logger.Debug("sent message", "message_id", messageID, "topic", topic)
	return messageID, nil
}

func (n *Node) isJoined() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.joined
}

// unixSeconds renders a time as fractional Unix seconds, the wire form
// used by the legacy payload's timestamp field.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
