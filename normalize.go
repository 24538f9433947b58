package agentlink

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentlink/agentlink/a2a"
)

// replyToKeys are the metadata keys scanned for a reply reference in
// embedded A2A messages, in order.
var replyToKeys = []string{"in_reply_to", "inReplyTo", "reply_to", "replyTo"}

// normalize converts a decoded wire payload into the internal Message
// representation. It returns nil when the message must be dropped: a
// malformed payload (logged) or the node's own published message echoed
// back by the broker (self-suppression).
func (n *Node) normalize(topic string, payload map[string]any) *Message {
	audience := AudienceEveryone
	if isDirectTopic(topic, n.roomID) {
		audience = AudienceDirect
	}
	// An explicit recognized audience field wins over the topic shape;
	// unrecognized values fall back to the heuristic.
	if s, ok := payload["audience"].(string); ok {
		if parsed, ok := parseAudience(s); ok {
			audience = parsed
		}
	}

	recipientID := ""
	if audience == AudienceDirect {
		if s, ok := payload["recipient_id"].(string); ok && s != "" {
			recipientID = s
		} else {
			// Delivery on the direct topic implies this node is the recipient.
			recipientID = n.agentID
		}
	}

	timestamp := time.Now()
	if secs, ok := floatValue(payload["timestamp"]); ok {
		timestamp = time.Unix(0, int64(secs*float64(time.Second)))
	}

	if env := a2a.ParseEnvelope(payload); env != nil {
		if embedded := env.EmbeddedMessage(); embedded != nil {
			return n.normalizeA2A(payload, env, *embedded, audience, recipientID, timestamp)
		}
	}
	return n.normalizeLegacy(topic, payload, audience, recipientID, timestamp)
}

func (n *Node) normalizeA2A(payload map[string]any, env *a2a.Envelope, embedded a2a.Message, audience Audience, recipientID string, timestamp time.Time) *Message {
	senderID := a2a.DeriveSenderID(embedded)
	if senderID == n.agentID {
		return nil
	}

	var content any
	if text, ok := embedded.PrimaryText(); ok {
		content = text
	} else {
		content = embedded.ToMap()
	}

	inReplyTo := ""
	for _, key := range replyToKeys {
		if s, ok := embedded.Metadata[key].(string); ok {
			inReplyTo = s
			break
		}
	}

	return &Message{
		SenderID:    senderID,
		Content:     content,
		Timestamp:   timestamp,
		MessageID:   embedded.MessageID,
		InReplyTo:   inReplyTo,
		Audience:    audience,
		RecipientID: recipientID,
		RawPayload:  payload,
		Envelope:    env,
	}
}

func (n *Node) normalizeLegacy(topic string, payload map[string]any, audience Audience, recipientID string, timestamp time.Time) *Message {
	senderID, ok := payload["sender_id"].(string)
	if !ok {
		n.logger.Warn("malformed message received", "topic", topic, "reason", "missing sender_id")
		return nil
	}
	if senderID == n.agentID {
		return nil
	}
	content, ok := payload["content"]
	if !ok {
		n.logger.Warn("malformed message received", "topic", topic, "reason", "missing content")
		return nil
	}

	messageID, ok := payload["message_id"].(string)
	if !ok {
		messageID, ok = payload["messageId"].(string)
	}
	if !ok || messageID == "" {
		messageID = uuid.NewString()
	}

	inReplyTo, ok := payload["in_reply_to"].(string)
	if !ok {
		inReplyTo, _ = payload["inReplyTo"].(string)
	}

	return &Message{
		SenderID:    senderID,
		Content:     content,
		Timestamp:   timestamp,
		MessageID:   messageID,
		InReplyTo:   inReplyTo,
		Audience:    audience,
		RecipientID: recipientID,
		RawPayload:  payload,
	}
}

// floatValue accepts the numeric shapes a decoded JSON tree or a caller
// built map may carry for a timestamp.
func floatValue(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	default:
		return 0, false
	}
}
