// Package a2a implements the data model for the A2A (Agent-to-Agent)
// protocol: message parts, messages, send configuration, and the JSON-RPC
// 2.0 envelopes that carry them on the wire.
//
// A2A is an open protocol enabling communication and interoperability
// between AI agent systems, built on JSON-RPC 2.0. This package provides
// pure (de)serialization between the typed model and a generic JSON-like
// tree (map[string]any); it performs no I/O.
//
// # Tree codec
//
// Every model type converts to its wire form with ToMap and back with the
// matching FromMap function:
//
//	msg := a2a.NewTextMessage(a2a.MessageRoleUser, "hello")
//	tree := msg.ToMap()
//	parsed, err := a2a.MessageFromMap(tree)
//
// Parsing applies two-tier validation. Required fields (role, a non-empty
// parts list, a string messageId, the jsonrpc version) fail the whole
// parse with a *ValidationError. Optional fields are individually
// best-effort: a mistyped optional value is dropped, and a malformed
// params substructure degrades to an envelope without params instead of
// rejecting it. Snake_case alias keys are accepted on read; camelCase is
// always emitted.
//
// # Envelopes
//
// Envelope is the general JSON-RPC container. Use IsEnvelopeMap to detect
// whether an arbitrary decoded payload is an A2A envelope, and
// ParseEnvelope for a lenient parse that returns nil instead of an error:
//
//	if env := a2a.ParseEnvelope(payload); env != nil {
//	    if msg := env.EmbeddedMessage(); msg != nil {
//	        // handle the embedded A2A message
//	    }
//	}
//
// # Sender identity
//
// DeriveSenderID resolves a logical sender id from a message using an
// ordered fallback chain: explicit metadata claims, then contextId, then
// taskId, then a synthesized "a2a:<role>" placeholder. It never fails.
//
// All types in this package are plain values with no shared mutable
// state; conversion functions are stateless and safe for concurrent use.
package a2a
