package registration

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type ErrorReason string

const (
	REASON_FIELD_REQUIRED         ErrorReason = "FIELD_REQUIRED"
	REASON_INVALID_EMAIL          ErrorReason = "INVALID_EMAIL"
	REASON_INVALID_PHONE          ErrorReason = "INVALID_PHONE"
	REASON_NO_EVENTS_SELECTED     ErrorReason = "NO_EVENTS_SELECTED"
	REASON_PAPER_TOPIC_REQUIRED   ErrorReason = "PAPER_TOPIC_REQUIRED"
	REASON_RECEIPT_MISSING        ErrorReason = "RECEIPT_MISSING"
	REASON_TERMS_NOT_ACCEPTED     ErrorReason = "TERMS_NOT_ACCEPTED"
	REASON_REGISTRATION_IS_CLOSED ErrorReason = "REGISTRATION_IS_CLOSED"
	REASON_UNKNOWN_FIELD          ErrorReason = "UNKNOWN_FIELD"
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

// Blocking reports whether the error interrupts the user with a notice
// instead of being shown next to its field.
func (e *Error) Blocking() bool {
	return e.Reason == REASON_PAPER_TOPIC_REQUIRED || e.Reason == REASON_REGISTRATION_IS_CLOSED
}

func newRegistrationError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewFieldRequiredError() *Error {
	return newRegistrationError(REASON_FIELD_REQUIRED, "This field is required", nil)
}

func NewInvalidEmailError() *Error {
	return newRegistrationError(REASON_INVALID_EMAIL, "Please enter a valid email address", nil)
}

func NewInvalidPhoneError() *Error {
	return newRegistrationError(REASON_INVALID_PHONE, "Phone number must be exactly 10 digits", nil)
}

func NewNoEventsSelectedError() *Error {
	return newRegistrationError(REASON_NO_EVENTS_SELECTED, "Please select at least one event", nil)
}

func NewPaperTopicRequiredError() *Error {
	return newRegistrationError(REASON_PAPER_TOPIC_REQUIRED, "Please enter the topic for your Paper Presentation", nil)
}

func NewReceiptMissingError() *Error {
	return newRegistrationError(REASON_RECEIPT_MISSING, "Please upload payment receipt", nil)
}

func NewTermsNotAcceptedError() *Error {
	return newRegistrationError(REASON_TERMS_NOT_ACCEPTED, "You must agree to the terms and conditions", nil)
}

func NewRegistrationIsClosedError(closedAt time.Time) *Error {
	return newRegistrationError(REASON_REGISTRATION_IS_CLOSED,
		"⚠️ Registration Closed\n\nWe apologize, but registration for InfoTech 2026 closed on February 5th, 2026. Please check back for future events!",
		fmt.Errorf("registration closed at %s", closedAt.Format(time.RFC3339)))
}

func NewUnknownFieldError(f Field) *Error {
	return newRegistrationError(REASON_UNKNOWN_FIELD, fmt.Sprintf("Unknown field %q", f), nil)
}

// FieldErrors holds the inline error shown for each field. An empty set
// means the form is valid.
type FieldErrors map[Field]*Error

func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

// Blocking returns the first error that must interrupt the user, if any.
func (fe FieldErrors) Blocking() *Error {
	for _, f := range fe.fields() {
		if fe[f].Blocking() {
			return fe[f]
		}
	}
	return nil
}

func (fe FieldErrors) Clone() FieldErrors {
	c := make(FieldErrors, len(fe))
	for k, v := range fe {
		c[k] = v
	}
	return c
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range fe.fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[f].Message))
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) fields() []Field {
	fields := make([]Field, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
