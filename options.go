package agentlink

import (
	"log/slog"

	"github.com/agentlink/agentlink/a2a"
	"github.com/agentlink/agentlink/transport"
)

// Option configures a Node at construction time.
type Option func(*Node)

// WithRoomID sets the room the node participates in. Defaults to a
// generated UUID.
func WithRoomID(roomID string) Option {
	return func(n *Node) { n.roomID = roomID }
}

// WithAgentID sets the node's own agent id. Defaults to a generated UUID.
func WithAgentID(agentID string) Option {
	return func(n *Node) { n.agentID = agentID }
}

// WithQOS sets the delivery-quality token passed to the transport for
// every subscribe and publish. Defaults to transport.AtLeastOnce.
func WithQOS(qos transport.QOS) Option {
	return func(n *Node) { n.qos = qos }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Node) { n.logger = logger }
}

// WithGroupMessages controls whether the node subscribes to the room's
// broadcast topic on Join. Enabled by default.
func WithGroupMessages(enabled bool) Option {
	return func(n *Node) { n.respondToGroup = enabled }
}

// WithDirectMessages controls whether the node subscribes to its own
// direct topic on Join. Enabled by default.
func WithDirectMessages(enabled bool) Option {
	return func(n *Node) { n.respondToDirect = enabled }
}

// sendOptions collects per-send settings shared by SendMessage and
// SendA2ARequest. Each method fills in its own defaults before applying
// the caller's options.
type sendOptions struct {
	audience    Audience
	recipientID string
	inReplyTo   string

	// A2A request settings.
	requestID       any
	configuration   *a2a.SendConfiguration
	requestMetadata map[string]any
	messageMetadata map[string]any
	extensions      []string
	referenceIDs    []string
	taskID          string
	contextID       string
	messageID       string
}

// SendOption configures one send operation.
type SendOption func(*sendOptions)

// ToEveryone addresses the send to the whole room.
func ToEveryone() SendOption {
	return func(o *sendOptions) {
		o.audience = AudienceEveryone
		o.recipientID = ""
	}
}

// ToAgent addresses the send directly to one agent.
func ToAgent(agentID string) SendOption {
	return func(o *sendOptions) {
		o.audience = AudienceDirect
		o.recipientID = agentID
	}
}

// InReplyTo marks the outgoing legacy message as a reply to messageID.
func InReplyTo(messageID string) SendOption {
	return func(o *sendOptions) { o.inReplyTo = messageID }
}

// WithRequestID overrides the generated JSON-RPC request id. Per JSON-RPC
// 2.0 the id may be a string or an integer.
func WithRequestID(id any) SendOption {
	return func(o *sendOptions) { o.requestID = id }
}

// WithConfiguration attaches send configuration to an A2A request.
func WithConfiguration(cfg *a2a.SendConfiguration) SendOption {
	return func(o *sendOptions) { o.configuration = cfg }
}

// WithRequestMetadata attaches request-level metadata to an A2A request.
func WithRequestMetadata(metadata map[string]any) SendOption {
	return func(o *sendOptions) { o.requestMetadata = metadata }
}

// WithMessageMetadata merges metadata into the outgoing A2A message,
// overriding existing keys.
func WithMessageMetadata(metadata map[string]any) SendOption {
	return func(o *sendOptions) { o.messageMetadata = metadata }
}

// WithExtensions replaces the outgoing A2A message's extensions.
func WithExtensions(extensions ...string) SendOption {
	return func(o *sendOptions) { o.extensions = extensions }
}

// WithReferenceTaskIDs replaces the outgoing A2A message's referenced
// task ids.
func WithReferenceTaskIDs(ids ...string) SendOption {
	return func(o *sendOptions) { o.referenceIDs = ids }
}

// WithTaskID sets the outgoing A2A message's task id.
func WithTaskID(taskID string) SendOption {
	return func(o *sendOptions) { o.taskID = taskID }
}

// WithContextID sets the outgoing A2A message's context id.
func WithContextID(contextID string) SendOption {
	return func(o *sendOptions) { o.contextID = contextID }
}

// WithMessageID overrides the outgoing A2A message's id.
func WithMessageID(messageID string) SendOption {
	return func(o *sendOptions) { o.messageID = messageID }
}
