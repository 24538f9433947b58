package a2a

import (
	"github.com/google/uuid"
)

// MethodMessageSend is the JSON-RPC method for sending a message.
const MethodMessageSend = "message/send"

// SendConfiguration holds optional settings for a message/send call.
type SendConfiguration struct {
	AcceptedOutputModes    []string
	HistoryLength          *int
	PushNotificationConfig map[string]any
	Blocking               *bool
}

// ToMap converts the configuration to its generic wire tree.
func (c SendConfiguration) ToMap() map[string]any {
	tree := map[string]any{}
	if len(c.AcceptedOutputModes) > 0 {
		tree["acceptedOutputModes"] = c.AcceptedOutputModes
	}
	if c.HistoryLength != nil {
		tree["historyLength"] = *c.HistoryLength
	}
	if len(c.PushNotificationConfig) > 0 {
		tree["pushNotificationConfig"] = c.PushNotificationConfig
	}
	if c.Blocking != nil {
		tree["blocking"] = *c.Blocking
	}
	return tree
}

// SendConfigurationFromMap parses a generic tree into a SendConfiguration.
// Present-but-mistyped historyLength or blocking values fail the parse;
// everything else is best-effort.
func SendConfigurationFromMap(v any) (SendConfiguration, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return SendConfiguration{}, newValidationError("a2a: configuration must be an object")
	}
	cfg := SendConfiguration{
		AcceptedOutputModes: stringSlice(m["acceptedOutputModes"]),
	}
	if raw, present := m["historyLength"]; present && raw != nil {
		n, ok := intValue(raw)
		if !ok {
			return SendConfiguration{}, newValidationError("a2a: 'historyLength' must be an integer if provided")
		}
		cfg.HistoryLength = &n
	}
	if pnc, ok := m["pushNotificationConfig"].(map[string]any); ok {
		cfg.PushNotificationConfig = pnc
	}
	if raw, present := m["blocking"]; present && raw != nil {
		b, ok := raw.(bool)
		if !ok {
			return SendConfiguration{}, newValidationError("a2a: 'blocking' must be a boolean if provided")
		}
		cfg.Blocking = &b
	}
	return cfg, nil
}

// intValue accepts an int directly or an integral float64 (the shape
// json.Unmarshal produces for JSON numbers).
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// SendParams holds the parameters of a message/send JSON-RPC call.
type SendParams struct {
	Message       Message
	Configuration *SendConfiguration
	Metadata      map[string]any
}

// ToMap converts the params to their generic wire tree.
func (p SendParams) ToMap() map[string]any {
	tree := map[string]any{"message": p.Message.ToMap()}
	if p.Configuration != nil {
		if cfg := p.Configuration.ToMap(); len(cfg) > 0 {
			tree["configuration"] = cfg
		}
	}
	if len(p.Metadata) > 0 {
		tree["metadata"] = p.Metadata
	}
	return tree
}

// SendParamsFromMap parses a generic tree into SendParams. The embedded
// message is required; a malformed message or configuration fails the parse.
func SendParamsFromMap(v any) (SendParams, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return SendParams{}, newValidationError("a2a: params must be an object")
	}
	rawMessage, ok := m["message"].(map[string]any)
	if !ok {
		return SendParams{}, newValidationError("a2a: params must include a 'message' object")
	}
	msg, err := MessageFromMap(rawMessage)
	if err != nil {
		return SendParams{}, err
	}
	params := SendParams{Message: msg}
	if rawCfg, ok := m["configuration"].(map[string]any); ok {
		cfg, err := SendConfigurationFromMap(rawCfg)
		if err != nil {
			return SendParams{}, err
		}
		params.Configuration = &cfg
	}
	if metadata, ok := m["metadata"].(map[string]any); ok {
		params.Metadata = metadata
	}
	return params, nil
}

// SendMessageRequest is a JSON-RPC request envelope for message/send.
type SendMessageRequest struct {
	JSONRPC string
	ID      any // string or integer per JSON-RPC 2.0
	Method  string
	Params  SendParams
}

// NewSendMessageRequest creates a message/send request wrapping the given
// message, with a freshly generated request id.
func NewSendMessageRequest(msg Message) SendMessageRequest {
	return SendMessageRequest{
		JSONRPC: Version,
		ID:      uuid.NewString(),
		Method:  MethodMessageSend,
		Params:  SendParams{Message: msg},
	}
}

// ToMap converts the request to its generic wire tree.
func (r SendMessageRequest) ToMap() map[string]any {
	return map[string]any{
		"jsonrpc": r.JSONRPC,
		"id":      r.ID,
		"method":  r.Method,
		"params":  r.Params.ToMap(),
	}
}

// Envelope is the general JSON-RPC container used by the A2A protocol.
// A request carries Method and Params; a response carries Result or Error.
type Envelope struct {
	JSONRPC string
	ID      any
	Method  string
	Params  *SendParams
	Result  any
	Error   map[string]any
	Raw     map[string]any
}

// IsRequest reports whether the envelope is a JSON-RPC request.
func (e *Envelope) IsRequest() bool { return e.Method != "" }

// EmbeddedMessage returns the A2A message carried by the envelope: the
// params message for requests, or a best-effort parse of the result for
// responses. It returns nil when neither yields a message; it never fails.
func (e *Envelope) EmbeddedMessage() *Message {
	if e.Params != nil {
		msg := e.Params.Message
		return &msg
	}
	if result, ok := e.Result.(map[string]any); ok {
		if msg, err := MessageFromMap(result); err == nil {
			return &msg
		}
	}
	return nil
}

// ToMap converts the envelope to its generic wire tree.
func (e *Envelope) ToMap() map[string]any {
	tree := map[string]any{"jsonrpc": e.JSONRPC}
	if e.ID != nil {
		tree["id"] = e.ID
	}
	if e.Method != "" {
		tree["method"] = e.Method
	}
	if e.Params != nil {
		tree["params"] = e.Params.ToMap()
	}
	if e.Result != nil {
		tree["result"] = e.Result
	}
	if e.Error != nil {
		tree["error"] = e.Error
	}
	return tree
}

// EnvelopeFromMap parses a generic tree into an Envelope. It returns a
// *ValidationError when the value is not an object or the jsonrpc version
// is not "2.0". A malformed params substructure degrades silently to nil
// params rather than rejecting the whole envelope.
func EnvelopeFromMap(v any) (*Envelope, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, newValidationError("a2a: envelope must be an object")
	}
	if m["jsonrpc"] != Version {
		return nil, newValidationError("a2a: unsupported or missing JSON-RPC version")
	}
	env := &Envelope{
		JSONRPC: Version,
		ID:      m["id"],
		Result:  m["result"],
		Raw:     m,
	}
	if method, ok := m["method"].(string); ok {
		env.Method = method
	}
	if rawParams, ok := m["params"].(map[string]any); ok {
		if params, err := SendParamsFromMap(rawParams); err == nil {
			env.Params = &params
		}
	}
	if errObj, ok := m["error"].(map[string]any); ok {
		env.Error = errObj
	}
	return env, nil
}

// IsEnvelopeMap reports whether the payload looks like an A2A JSON-RPC
// envelope. It is the discriminator used for wire format detection.
func IsEnvelopeMap(payload any) bool {
	m, ok := payload.(map[string]any)
	return ok && m["jsonrpc"] == Version
}

// ParseEnvelope parses a payload into an Envelope if possible, returning
// nil for anything that is not a well-formed A2A envelope.
func ParseEnvelope(payload any) *Envelope {
	if !IsEnvelopeMap(payload) {
		return nil
	}
	env, err := EnvelopeFromMap(payload)
	if err != nil {
		return nil
	}
	return env
}
