package odoo

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when a verb is invoked before a successful
// authentication; callers recover by re-running Authenticate.
var ErrNotConnected = errors.New("not connected to odoo")

// RemoteError represents an operation the backend explicitly rejected:
// validation, permission or a missing record. Terminal for that call.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// TransportError represents a network level failure: connection refused,
// timeout or a non-2xx HTTP status. Terminal for that call, never retried.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("odoo transport error: status %v", e.StatusCode)
	}
	return fmt.Sprintf("odoo transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthenticationError represents a failed authenticate attempt: invalid
// credentials or an unreachable backend. Recoverable by re-authenticating.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("odoo authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }
