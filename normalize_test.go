package agentlink

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlink/agentlink/a2a"
)

func newTestNode(t *testing.T, opts ...Option) *Node {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := []Option{
		WithRoomID("room"),
		WithAgentID("self"),
		WithLogger(quiet),
	}
	return New(&fakeTransport{}, append(base, opts...)...)
}

func legacyPayload(senderID string) map[string]any {
	return map[string]any{
		"sender_id":  senderID,
		"content":    "hello",
		"message_id": "msg-1",
	}
}

func TestNormalizeLegacy(t *testing.T) {
	n := newTestNode(t)

	msg := n.normalize(GroupTopic("room"), legacyPayload("peer"))
	require.NotNil(t, msg)
	assert.Equal(t, "peer", msg.SenderID)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "msg-1", msg.MessageID)
	assert.Equal(t, AudienceEveryone, msg.Audience)
	assert.Empty(t, msg.RecipientID)
	assert.Nil(t, msg.Envelope)
}

func TestNormalizeLegacySelfSuppression(t *testing.T) {
	n := newTestNode(t)
	assert.Nil(t, n.normalize(GroupTopic("room"), legacyPayload("self")))
}

func TestNormalizeLegacyMalformed(t *testing.T) {
	n := newTestNode(t)

	missingSender := map[string]any{"content": "hello"}
	assert.Nil(t, n.normalize(GroupTopic("room"), missingSender))

	missingContent := map[string]any{"sender_id": "peer"}
	assert.Nil(t, n.normalize(GroupTopic("room"), missingContent))
}

func TestNormalizeLegacyDefaults(t *testing.T) {
	n := newTestNode(t)

	payload := map[string]any{"sender_id": "peer", "content": "hi"}
	before := time.Now()
	msg := n.normalize(GroupTopic("room"), payload)
	require.NotNil(t, msg)
	assert.NotEmpty(t, msg.MessageID)
	assert.False(t, msg.Timestamp.Before(before.Truncate(time.Second)))

	// camelCase fallbacks.
	payload = map[string]any{
		"sender_id": "peer",
		"content":   "hi",
		"messageId": "msg-camel",
		"inReplyTo": "msg-0",
	}
	msg = n.normalize(GroupTopic("room"), payload)
	require.NotNil(t, msg)
	assert.Equal(t, "msg-camel", msg.MessageID)
	assert.Equal(t, "msg-0", msg.InReplyTo)
}

func TestNormalizeTimestamp(t *testing.T) {
	n := newTestNode(t)

	payload := legacyPayload("peer")
	payload["timestamp"] = 1700000000.5
	msg := n.normalize(GroupTopic("room"), payload)
	require.NotNil(t, msg)
	assert.Equal(t, time.Unix(1700000000, 500000000), msg.Timestamp)
}

func TestNormalizeAudience(t *testing.T) {
	n := newTestNode(t)

	tests := []struct {
		name          string
		topic         string
		audienceField any
		wantAudience  Audience
		wantRecipient string
	}{
		{"group topic", GroupTopic("room"), nil, AudienceEveryone, ""},
		{"direct topic", DirectTopic("room", "self"), nil, AudienceDirect, "self"},
		{"explicit direct on group topic", GroupTopic("room"), "direct", AudienceDirect, "self"},
		{"explicit everyone on direct topic", DirectTopic("room", "self"), "everyone", AudienceEveryone, ""},
		{"unrecognized audience falls back to topic shape", DirectTopic("room", "self"), "broadcast", AudienceDirect, "self"},
		{"non-string audience falls back to topic shape", GroupTopic("room"), 42, AudienceEveryone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := legacyPayload("peer")
			if tt.audienceField != nil {
				payload["audience"] = tt.audienceField
			}
			msg := n.normalize(tt.topic, payload)
			require.NotNil(t, msg)
			assert.Equal(t, tt.wantAudience, msg.Audience)
			assert.Equal(t, tt.wantRecipient, msg.RecipientID)
		})
	}
}

func TestNormalizeDirectExplicitRecipient(t *testing.T) {
	n := newTestNode(t)

	payload := legacyPayload("peer")
	payload["recipient_id"] = "someone-else"
	msg := n.normalize(DirectTopic("room", "self"), payload)
	require.NotNil(t, msg)
	assert.Equal(t, "someone-else", msg.RecipientID)
}

func TestNormalizeA2A(t *testing.T) {
	n := newTestNode(t)

	inner := a2a.NewTextMessage(a2a.MessageRoleUser, "Ping")
	inner.Metadata = map[string]any{
		"sender_id":   "peer",
		"in_reply_to": "msg-0",
	}
	req := a2a.NewSendMessageRequest(inner)

	msg := n.normalize(DirectTopic("room", "self"), req.ToMap())
	require.NotNil(t, msg)
	assert.Equal(t, "peer", msg.SenderID)
	assert.Equal(t, "Ping", msg.Content)
	assert.Equal(t, inner.MessageID, msg.MessageID)
	assert.Equal(t, "msg-0", msg.InReplyTo)
	assert.Equal(t, AudienceDirect, msg.Audience)
	assert.Equal(t, "self", msg.RecipientID)
	require.NotNil(t, msg.Envelope)
	assert.True(t, msg.Envelope.IsRequest())
}

func TestNormalizeA2ASelfSuppression(t *testing.T) {
	n := newTestNode(t)

	inner := a2a.NewTextMessage(a2a.MessageRoleUser, "echo")
	inner.Metadata = map[string]any{"sender_id": "self"}
	req := a2a.NewSendMessageRequest(inner)

	assert.Nil(t, n.normalize(GroupTopic("room"), req.ToMap()))
}

func TestNormalizeA2AContentFallsBackToTree(t *testing.T) {
	n := newTestNode(t)

	inner := a2a.NewMessage(a2a.MessageRoleUser, a2a.Part{
		Kind: "data",
		Data: map[string]any{"value": 1},
	})
	inner.Metadata = map[string]any{"sender_id": "peer"}
	req := a2a.NewSendMessageRequest(inner)

	msg := n.normalize(GroupTopic("room"), req.ToMap())
	require.NotNil(t, msg)
	tree, ok := msg.Content.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, inner.MessageID, tree["messageId"])
}

// An envelope without an embedded message is read as a legacy payload; it
// usually lacks sender_id/content and is dropped as malformed.
func TestNormalizeEnvelopeWithoutMessage(t *testing.T) {
	n := newTestNode(t)

	payload := map[string]any{
		"jsonrpc": a2a.Version,
		"id":      "req-1",
		"result":  map[string]any{"status": "ok"},
	}
	assert.Nil(t, n.normalize(GroupTopic("room"), payload))
}
