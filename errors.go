package agentlink

import "errors"

// ErrNotJoined is returned when a send operation is attempted before Join.
var ErrNotJoined = errors.New("agentlink: not joined to a room")

// ErrRecipientRequired is returned when a direct-audience send has no
// recipient id.
var ErrRecipientRequired = errors.New("agentlink: recipient id required for direct messages")

// ErrInvalidRole is returned when an outgoing A2A message carries a role
// other than user or agent.
var ErrInvalidRole = errors.New("agentlink: message role must be 'user' or 'agent'")
