package agentlink

import (
	"fmt"
	"strings"
)

// GroupTopic returns the broadcast topic for a room.
func GroupTopic(roomID string) string {
	return fmt.Sprintf("rooms/%s/group", roomID)
}

// DirectTopic returns the point-to-point topic for an agent in a room.
func DirectTopic(roomID, agentID string) string {
	return fmt.Sprintf("rooms/%s/direct/%s", roomID, agentID)
}

// resolveOutgoingTopic computes the destination topic for a message given
// its audience. A direct audience without a recipient is a caller error.
func resolveOutgoingTopic(roomID string, audience Audience, recipientID string) (string, error) {
	switch audience {
	case AudienceDirect:
		if recipientID == "" {
			return "", ErrRecipientRequired
		}
		return DirectTopic(roomID, recipientID), nil
	default:
		return GroupTopic(roomID), nil
	}
}

// isDirectTopic reports whether a topic is a direct topic of the room.
// Used by the normalizer's audience heuristic.
func isDirectTopic(topic, roomID string) bool {
	return strings.HasPrefix(topic, fmt.Sprintf("rooms/%s/direct/", roomID))
}
