package routing

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand is returned for a bang-prefixed message that is not one of
// the recognized admin commands. Callers usually fall back to treating the
// message as ordinary text.
var ErrUnknownCommand = errors.New("unrecognized admin command")

// AuthorizationError rejects an admin command from anyone but the configured
// admin identity. The router state is untouched.
type AuthorizationError struct {
	SenderHash string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("sender %s is not authorized for admin commands", e.SenderHash)
}

// CapabilityError rejects a request whose selected provider cannot handle the
// content kind. Explicit failure is preferred over silently routing elsewhere.
type CapabilityError struct {
	Provider Provider
	Kind     ContentKind
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("provider %s does not support %s content", e.Provider, e.Kind)
}
