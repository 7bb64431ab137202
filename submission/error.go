package submission

import "fmt"

type ErrorReason string

const (
	REASON_REGISTRATION_CLOSED    ErrorReason = "REGISTRATION_CLOSED"
	REASON_VALIDATION_FAILED      ErrorReason = "VALIDATION_FAILED"
	REASON_TRANSPORT_FAILURE      ErrorReason = "TRANSPORT_FAILURE"
	REASON_REJECTED               ErrorReason = "REJECTED"
	REASON_SUBMISSION_IN_PROGRESS ErrorReason = "SUBMISSION_IN_PROGRESS"
)

// Error is a failed submission. Message is the notice shown to the user.
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

func newSubmissionError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewRegistrationClosedError(message string, cause error) *Error {
	return newSubmissionError(REASON_REGISTRATION_CLOSED, message, cause)
}

func NewValidationFailedError(cause error) *Error {
	return newSubmissionError(REASON_VALIDATION_FAILED, "Please fill in all required fields correctly.", cause)
}

func NewTransportFailureError(cause error) *Error {
	return newSubmissionError(REASON_TRANSPORT_FAILURE, "An error occurred. Please try again.", cause)
}

func NewRejectedError(serverMessage *string) *Error {
	message := "Submission failed"
	if serverMessage != nil && *serverMessage != "" {
		message = fmt.Sprintf("Submission failed: %s", *serverMessage)
	}
	return newSubmissionError(REASON_REJECTED, message, nil)
}

func NewSubmissionInProgressError() *Error {
	return newSubmissionError(REASON_SUBMISSION_IN_PROGRESS, "Submitting...", nil)
}
