// Package agentlink lets autonomous software agents exchange messages
// over a shared publish/subscribe transport, speaking either a simple
// chat-style payload or the standardized A2A JSON-RPC envelope.
//
// # Rooms and nodes
//
// Agents meet in rooms. A room maps to two kinds of topics on the
// transport: one broadcast topic ("rooms/<room>/group") and one direct
// topic per agent ("rooms/<room>/direct/<agent>"). A Node is one agent's
// presence in a room:
//
//	node := agentlink.New(tr,
//	    agentlink.WithRoomID("a2a-room"),
//	    agentlink.WithAgentID("agent-recipient"),
//	)
//	node.AddHandler(func(msg agentlink.Message) (agentlink.Response, error) {
//	    return agentlink.ReplyA2A(a2a.NewTextMessage(a2a.MessageRoleAgent, "Pong")), nil
//	})
//	if err := node.Join(); err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Leave()
//
// Register all handlers before Join. Handlers run synchronously on the
// transport's delivery goroutine in registration order; every handler
// sees every accepted message, and a failing handler is logged and
// skipped without affecting the others.
//
// # Wire formats
//
// Inbound payloads are normalized into one Message shape regardless of
// format. A payload whose tree carries jsonrpc "2.0" is treated as an
// A2A envelope (see the a2a package); anything else is read as a legacy
// chat payload with sender_id and content fields. A node never processes
// its own published messages, even though it is subscribed to the topics
// it publishes on.
//
// Outbound, SendMessage publishes legacy chat payloads and
// SendA2ARequest publishes message/send JSON-RPC requests. Handler
// responses choose their wire shape through the Response variants: Reply
// for legacy content, ReplyA2A for an A2A message, ReplyRequest for a
// prepared request, ReplyEnvelope for a raw envelope tree.
//
// The transport itself (connection lifecycle, TLS, authentication,
// delivery guarantees) is a collaborator behind the transport.Transport
// interface; see transport/mqtt for the MQTT implementation and
// transport/memory for an in-process broker suited to tests.
package agentlink
