package billing

import (
	"errors"
	"fmt"
)

// ErrMalformedEvent marks an authenticated event whose content cannot be
// turned into a LifecycleEvent. Redelivery will not fix it.
var ErrMalformedEvent = errors.New("malformed billing event")

// AuthenticationError means the payload signature did not verify. The event
// must never be applied.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.Err == nil {
		return "billing webhook authentication failed"
	}
	return fmt.Sprintf("billing webhook authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ProtocolViolationError means ingress did not receive the raw request body,
// usually because something upstream parsed or re-encoded it. This is a
// deployment defect, not a bad request.
type ProtocolViolationError struct {
	Reason string
}

func (e *ProtocolViolationError) Error() string {
	return "billing webhook protocol violation: " + e.Reason
}

func IsAuthenticationError(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

func IsProtocolViolation(err error) bool {
	var target *ProtocolViolationError
	return errors.As(err, &target)
}
