package a2a

import "strings"

// senderMetadataKeys are the metadata keys checked for an explicit sender
// identity claim, in order of precedence.
var senderMetadataKeys = []string{
	"sender_id", "senderId", "agent_id", "agentId", "authorId", "author_id",
}

// DeriveSenderID derives a logical sender identifier from a message.
//
// Explicit identity claims in metadata win over structural identifiers
// (contextId, then taskId), which win over a role-based placeholder. The
// function is total: it always returns a usable, non-empty string.
func DeriveSenderID(msg Message) string {
	for _, key := range senderMetadataKeys {
		if v, ok := msg.Metadata[key].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	if msg.ContextID != "" {
		return msg.ContextID
	}
	if msg.TaskID != "" {
		return msg.TaskID
	}
	return "a2a:" + string(msg.Role)
}
