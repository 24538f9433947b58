package a2a

import "fmt"

// ValidationError reports a structural problem encountered while parsing
// an A2A tree: a missing or mistyped required field, or an unsupported
// JSON-RPC version. Optional substructure never produces a
// ValidationError; it degrades to absent instead.
type ValidationError struct {
	Msg string
}

// Error returns the validation failure message.
func (e *ValidationError) Error() string { return e.Msg }

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
