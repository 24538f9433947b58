package agentlink

import (
	"encoding/json"
	"fmt"

	"github.com/agentlink/agentlink/a2a"
)

// handleInbound is the transport subscription callback. It runs on the
// transport's delivery goroutine; nothing here may panic or return an
// error to the transport, so every failure is logged and swallowed.
func (n *Node) handleInbound(topic string, payload []byte) {
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		n.logger.Warn("ignoring undecodable payload", "topic", topic, "error", err)
		return
	}
	tree, ok := decoded.(map[string]any)
	if !ok {
		n.logger.Warn("ignoring non-object payload", "topic", topic)
		return
	}

	msg := n.normalize(topic, tree)
	if msg == nil {
		return
	}
	n.logger.Info("received message",
		"sender", msg.SenderID,
		"message_id", msg.MessageID,
		"audience", string(msg.Audience),
	)

	n.mu.Lock()
	handlers := make([]Handler, len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.Unlock()

	// Every handler runs even when an earlier one produced a response;
	// a handler failure never stops the loop.
	for _, h := range handlers {
		resp, err := n.invoke(h, *msg)
		if err != nil {
			n.logger.Error("error in message handler", "message_id", msg.MessageID, "error", err)
			continue
		}
		if resp == nil {
			continue
		}
		if err := n.publishResponse(*msg, resp); err != nil {
			n.logger.Error("failed to publish handler response", "message_id", msg.MessageID, "error", err)
		}
	}
}

// invoke runs one handler, converting a panic into an error so a broken
// handler cannot take down the delivery goroutine.
func (n *Node) invoke(h Handler, msg Message) (resp Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(msg)
}

// publishResponse translates a handler's response into a wire payload and
// publishes it to the destination mirroring the inbound message's
// audience: the group topic for broadcasts, the original sender's direct
// topic otherwise.
func (n *Node) publishResponse(inbound Message, resp Response) error {
	switch r := resp.(type) {
	case RequestResponse:
		return n.publishTree(inbound, r.Request.ToMap())

	case A2AMessageResponse:
		// Replying to a JSON-RPC request: echo the request id in a
		// result envelope. Otherwise open a new message/send exchange.
		if env := inbound.Envelope; env != nil && env.IsRequest() && env.ID != nil {
			return n.publishTree(inbound, map[string]any{
				"jsonrpc": a2a.Version,
				"id":      env.ID,
				"result":  r.Message.ToMap(),
			})
		}
		return n.publishTree(inbound, a2a.NewSendMessageRequest(r.Message).ToMap())

	case EnvelopeResponse:
		return n.publishTree(inbound, r.Payload)

	case ContentResponse:
		recipientID := ""
		if inbound.Audience == AudienceDirect {
			recipientID = inbound.SenderID
		}
		_, err := n.publishLegacy(r.Content, inbound.Audience, recipientID, inbound.MessageID)
		return err

	default:
		return fmt.Errorf("agentlink: unsupported response type %T", resp)
	}
}

func (n *Node) publishTree(inbound Message, tree map[string]any) error {
	topic, err := n.replyTopic(inbound)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("agentlink: encode response: %w", err)
	}
	if err := n.transport.Publish(topic, raw, n.qos); err != nil {
		return fmt.Errorf("agentlink: publish %q: %w", topic, err)
	}
	return nil
}

func (n *Node) replyTopic(inbound Message) (string, error) {
	if inbound.Audience == AudienceDirect {
		return resolveOutgoingTopic(n.roomID, AudienceDirect, inbound.SenderID)
	}
	return GroupTopic(n.roomID), nil
}
