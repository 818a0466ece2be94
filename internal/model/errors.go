package model

import "errors"

var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrUnknownSlot     = errors.New("unknown profile slot")
)

// ValidationError reports a required field that was left empty. It is
// raised before any state change or network call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}
