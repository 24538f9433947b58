package agentlink

import (
	"time"

	"github.com/agentlink/agentlink/a2a"
)

// Audience says who a message targets within a room.
type Audience string

const (
	// AudienceEveryone targets every agent in the room.
	AudienceEveryone Audience = "everyone"
	// AudienceDirect targets one specific agent.
	AudienceDirect Audience = "direct"
)

// parseAudience maps a wire audience value to an Audience. Unrecognized
// values are rejected so callers can fall back to the topic-shape
// heuristic.
func parseAudience(s string) (Audience, bool) {
	switch Audience(s) {
	case AudienceEveryone, AudienceDirect:
		return Audience(s), true
	default:
		return "", false
	}
}

// Message is the transport-agnostic representation of an inbound message
// after normalization. Handlers receive exactly this shape regardless of
// whether the wire payload was a legacy chat dict or an A2A envelope.
type Message struct {
	// SenderID identifies the originating agent.
	SenderID string

	// Content is the message body: the primary text for text-bearing A2A
	// messages, the full message tree for other A2A messages, or the
	// legacy payload's content value.
	Content any

	// Timestamp is when the message was sent (sender-reported when the
	// payload carries one, receive time otherwise).
	Timestamp time.Time

	// MessageID uniquely identifies the message.
	MessageID string

	// InReplyTo is the id of the message this one replies to, if any.
	InReplyTo string

	// Audience says whether the message was broadcast or direct.
	Audience Audience

	// RecipientID is the target agent for direct messages.
	RecipientID string

	// RawPayload is the decoded wire payload as received.
	RawPayload map[string]any

	// Envelope is the parsed A2A envelope for A2A-format messages, nil
	// for legacy chat payloads.
	Envelope *a2a.Envelope
}
