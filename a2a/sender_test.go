package a2a

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSenderID(t *testing.T) {
	base := func() Message {
		return NewTextMessage(MessageRoleUser, "hi")
	}

	tests := []struct {
		name  string
		setup func(*Message)
		want  string
	}{
		{
			name: "metadata beats contextId",
			setup: func(m *Message) {
				m.Metadata = map[string]any{"senderId": "A"}
				m.ContextID = "ctx"
			},
			want: "A",
		},
		{
			name: "sender_id has highest precedence",
			setup: func(m *Message) {
				m.Metadata = map[string]any{
					"sender_id": "first",
					"agentId":   "second",
				}
			},
			want: "first",
		},
		{
			name: "blank metadata value is skipped",
			setup: func(m *Message) {
				m.Metadata = map[string]any{"sender_id": "   ", "agent_id": "B"}
			},
			want: "B",
		},
		{
			name: "non-string metadata value is skipped",
			setup: func(m *Message) {
				m.Metadata = map[string]any{"sender_id": 42}
				m.ContextID = "ctx"
			},
			want: "ctx",
		},
		{
			name:  "contextId beats taskId",
			setup: func(m *Message) { m.ContextID = "ctx"; m.TaskID = "task" },
			want:  "ctx",
		},
		{
			name:  "taskId when no contextId",
			setup: func(m *Message) { m.TaskID = "task" },
			want:  "task",
		},
		{
			name:  "role placeholder as last resort",
			setup: func(m *Message) {},
			want:  "a2a:user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := base()
			tt.setup(&msg)
			assert.Equal(t, tt.want, DeriveSenderID(msg))
		})
	}
}
