package engine

import (
	"errors"
	"fmt"
)

// ErrMissingCapability matches every MissingCapabilityError.
var ErrMissingCapability = errors.New("engine capability unavailable")

// MissingCapabilityError reports an engine function the bridge needed but
// the engine does not provide.
type MissingCapabilityError struct {
	Name string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("engine capability %q unavailable", e.Name)
}

// Is reports whether target is ErrMissingCapability.
func (e *MissingCapabilityError) Is(target error) bool {
	return target == ErrMissingCapability
}

func missing(name string) error {
	return &MissingCapabilityError{Name: name}
}

// Payload decode errors.
var (
	ErrMissingPayload  = errors.New("event has no payload")
	ErrPayloadMismatch = errors.New("event payload does not match its kind")
)
