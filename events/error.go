package events

import "fmt"

type ErrorReason string

const (
	REASON_UNKNOWN_EVENT ErrorReason = "UNKNOWN_EVENT"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newEventError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

// NewUnknownEventError is returned for a name that is not in the catalogue.
// Names are matched exactly, so a change in case is also unknown.
func NewUnknownEventError(name string) *Error {
	return newEventError(REASON_UNKNOWN_EVENT, fmt.Sprintf("%q is not an InfoTech 2026 event", name), nil)
}
