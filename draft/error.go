package draft

import "fmt"

type ErrorReason string

const (
	REASON_FAILED_TO_TRANSLATE ErrorReason = "FAILED_TO_TRANSLATE"
	REASON_FAILED_TO_WRITE     ErrorReason = "FAILED_TO_WRITE"
	REASON_FAILED_TO_FETCH     ErrorReason = "FAILED_TO_FETCH"
	REASON_FAILED_TO_DELETE    ErrorReason = "FAILED_TO_DELETE"
	REASON_TIMEOUT             ErrorReason = "TIMEOUT"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newDraftError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewFailedToTranslateError(message string, cause error) *Error {
	return newDraftError(REASON_FAILED_TO_TRANSLATE, message, cause)
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newDraftError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newDraftError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewFailedToDeleteError(message string, cause error) *Error {
	return newDraftError(REASON_FAILED_TO_DELETE, message, cause)
}

func NewTimeoutError(message string) *Error {
	return newDraftError(REASON_TIMEOUT, message, nil)
}
