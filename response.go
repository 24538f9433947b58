package agentlink

import (
	"github.com/agentlink/agentlink/a2a"
)

// Response is what a handler may return for an inbound message. It is a
// closed set of variants, one per accepted outgoing shape, so the
// translation step in the dispatch loop stays exhaustive. A nil Response
// means the handler has nothing to publish.
type Response interface {
	response()
}

// ContentResponse replies with opaque content as a legacy chat payload.
// The outgoing payload's in_reply_to is set to the inbound message's id.
type ContentResponse struct {
	Content any
}

func (ContentResponse) response() {}

// Reply wraps opaque content in a ContentResponse.
func Reply(content any) Response { return ContentResponse{Content: content} }

// A2AMessageResponse replies with an A2A message. When the inbound
// payload was a JSON-RPC request carrying an id, the message is published
// as a result envelope echoing that id; otherwise it is wrapped in a
// fresh message/send request.
type A2AMessageResponse struct {
	Message a2a.Message
}

func (A2AMessageResponse) response() {}

// ReplyA2A wraps an A2A message in an A2AMessageResponse.
func ReplyA2A(msg a2a.Message) Response { return A2AMessageResponse{Message: msg} }

// RequestResponse publishes a ready-made message/send request verbatim.
type RequestResponse struct {
	Request a2a.SendMessageRequest
}

func (RequestResponse) response() {}

// ReplyRequest wraps a prepared request in a RequestResponse.
func ReplyRequest(req a2a.SendMessageRequest) Response { return RequestResponse{Request: req} }

// EnvelopeResponse forwards a raw A2A envelope tree unchanged. The caller
// is responsible for the payload being a well-formed envelope; choosing
// this variant replaces the runtime format sniffing a dynamic handler
// return would need.
type EnvelopeResponse struct {
	Payload map[string]any
}

func (EnvelopeResponse) response() {}

// ReplyEnvelope wraps a raw envelope tree in an EnvelopeResponse.
func ReplyEnvelope(payload map[string]any) Response { return EnvelopeResponse{Payload: payload} }

// Handler processes a normalized inbound message and optionally returns a
// response to publish. Handlers run synchronously on the transport's
// delivery goroutine, in registration order. A returned error is logged
// and isolated; it never stops other handlers.
type Handler func(msg Message) (Response, error)
