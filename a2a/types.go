package a2a

import (
	"github.com/google/uuid"
)

// Version is the JSON-RPC protocol version used by A2A envelopes.
const Version = "2.0"

// MessageRole indicates the originator of a message.
type MessageRole string

const (
	// MessageRoleUser is the role for messages from the user/client side.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAgent is the role for messages from the agent side.
	MessageRoleAgent MessageRole = "agent"
)

// Valid reports whether the role is one of the two A2A roles.
func (r MessageRole) Valid() bool {
	return r == MessageRoleUser || r == MessageRoleAgent
}

// Part represents one typed fragment of an A2A message body.
//
// A part is a kind tag plus an open set of data fields. Keys other than
// "kind" and "metadata" in the wire form live in Data, so unknown part
// kinds survive a round trip unchanged.
type Part struct {
	Kind     string
	Data     map[string]any
	Metadata map[string]any
}

// NewTextPart creates a text part carrying the given text.
func NewTextPart(text string) Part {
	return Part{Kind: "text", Data: map[string]any{"text": text}}
}

// Text returns the part's text field, if the part carries one.
func (p Part) Text() (string, bool) {
	v, ok := p.Data["text"].(string)
	return v, ok
}

// ToMap converts the part to its generic wire tree.
func (p Part) ToMap() map[string]any {
	m := make(map[string]any, len(p.Data)+2)
	m["kind"] = p.Kind
	for k, v := range p.Data {
		m[k] = v
	}
	if len(p.Metadata) > 0 {
		m["metadata"] = p.Metadata
	}
	return m
}

// PartFromMap parses a generic tree into a Part.
// It returns a *ValidationError if the value is not an object or the
// "kind" field is missing or not a string.
func PartFromMap(v any) (Part, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Part{}, newValidationError("a2a: part must be an object")
	}
	kind, ok := m["kind"].(string)
	if !ok {
		return Part{}, newValidationError("a2a: part requires a string 'kind' field")
	}
	var data map[string]any
	for k, val := range m {
		if k == "kind" || k == "metadata" {
			continue
		}
		if data == nil {
			data = make(map[string]any)
		}
		data[k] = val
	}
	metadata, _ := m["metadata"].(map[string]any)
	return Part{Kind: kind, Data: data, Metadata: metadata}, nil
}

// Message represents a single A2A message exchanged between agents.
type Message struct {
	Role             MessageRole
	Parts            []Part
	MessageID        string
	Kind             string
	Metadata         map[string]any
	Extensions       []string
	ReferenceTaskIDs []string
	TaskID           string
	ContextID        string
}

// NewMessage creates a new message with the given role and parts.
// The message id is a freshly generated UUID.
func NewMessage(role MessageRole, parts ...Part) Message {
	return Message{
		Role:      role,
		Parts:     parts,
		MessageID: uuid.NewString(),
		Kind:      "message",
	}
}

// NewTextMessage creates a text-only message with the given role.
func NewTextMessage(role MessageRole, text string) Message {
	return NewMessage(role, NewTextPart(text))
}

// PrimaryText returns the text of the first text-bearing part.
func (m Message) PrimaryText() (string, bool) {
	for _, p := range m.Parts {
		if text, ok := p.Text(); ok {
			return text, true
		}
	}
	return "", false
}

// ToMap converts the message to its generic wire tree. Optional fields
// are emitted only when set, always under their camelCase keys.
func (m Message) ToMap() map[string]any {
	parts := make([]any, 0, len(m.Parts))
	for _, p := range m.Parts {
		parts = append(parts, p.ToMap())
	}
	tree := map[string]any{
		"role":      string(m.Role),
		"parts":     parts,
		"messageId": m.MessageID,
		"kind":      m.Kind,
	}
	if len(m.Metadata) > 0 {
		tree["metadata"] = m.Metadata
	}
	if len(m.Extensions) > 0 {
		tree["extensions"] = m.Extensions
	}
	if len(m.ReferenceTaskIDs) > 0 {
		tree["referenceTaskIds"] = m.ReferenceTaskIDs
	}
	if m.TaskID != "" {
		tree["taskId"] = m.TaskID
	}
	if m.ContextID != "" {
		tree["contextId"] = m.ContextID
	}
	return tree
}

// MessageFromMap parses a generic tree into a Message.
//
// Required fields (role, non-empty parts, string messageId) fail the whole
// parse with a *ValidationError. Optional fields are best-effort: values of
// the wrong type are dropped rather than rejected. Snake_case aliases are
// accepted for messageId, taskId and contextId.
func MessageFromMap(v any) (Message, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Message{}, newValidationError("a2a: message must be an object")
	}
	role, _ := m["role"].(string)
	if !MessageRole(role).Valid() {
		return Message{}, newValidationError("a2a: message role must be 'user' or 'agent'")
	}
	rawParts, ok := m["parts"].([]any)
	if !ok || len(rawParts) == 0 {
		return Message{}, newValidationError("a2a: message requires a non-empty 'parts' list")
	}
	parts := make([]Part, 0, len(rawParts))
	for _, rp := range rawParts {
		p, err := PartFromMap(rp)
		if err != nil {
			return Message{}, err
		}
		parts = append(parts, p)
	}
	messageID, ok := stringAlias(m, "messageId", "message_id")
	if !ok {
		return Message{}, newValidationError("a2a: message requires a string 'messageId'")
	}
	kind, ok := m["kind"].(string)
	if !ok {
		kind = "message"
	}
	metadata, _ := m["metadata"].(map[string]any)
	taskID, _ := stringAlias(m, "taskId", "task_id")
	contextID, _ := stringAlias(m, "contextId", "context_id")
	return Message{
		Role:             MessageRole(role),
		Parts:            parts,
		MessageID:        messageID,
		Kind:             kind,
		Metadata:         metadata,
		Extensions:       stringSlice(m["extensions"]),
		ReferenceTaskIDs: stringSlice(m["referenceTaskIds"]),
		TaskID:           taskID,
		ContextID:        contextID,
	}, nil
}

// stringAlias returns the first of the given keys holding a string value.
func stringAlias(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// stringSlice converts a tree value into a string slice, accepting both
// []string (model-built trees) and []any (JSON-decoded trees). Non-string
// elements are dropped.
func stringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		if len(list) == 0 {
			return nil
		}
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
