package registration

import (
	"regexp"
	"strings"

	"github.com/infotech-symposium/event-registration/events"
)

const phoneDigits = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return NewInvalidEmailError()
	}
	return nil
}

// SanitizePhone drops every character that is not an ASCII digit.
func SanitizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

func ValidatePhone(phone string) error {
	if len(phone) != phoneDigits {
		return NewInvalidPhoneError()
	}
	return nil
}

func ValidateEvents(selected []string) error {
	if len(selected) == 0 {
		return NewNoEventsSelectedError()
	}
	return nil
}

func ValidatePaperTopic(selected []string, topic string) error {
	for _, name := range selected {
		if name == events.PaperPresentation && strings.TrimSpace(topic) == "" {
			return NewPaperTopicRequiredError()
		}
	}
	return nil
}

// ValidateField runs the live check for a single field as the user types.
// It returns the value that should be kept in the field, which differs from
// the input only for the phone number.
func ValidateField(f Field, value string) (string, error) {
	switch f {
	case FieldEmail:
		return value, ValidateEmail(value)
	case FieldPhone:
		phone := SanitizePhone(value)
		return phone, ValidatePhone(phone)
	default:
		return value, nil
	}
}

// ValidateForm runs every check against the snapshot without stopping at
// the first failure, so all errors can be shown at once.
func ValidateForm(reg Registration, termsAccepted bool) FieldErrors {
	errs := FieldErrors{}

	for _, f := range RequiredFields {
		value, _ := reg.Text(f)
		if strings.TrimSpace(value) == "" {
			errs[f] = NewFieldRequiredError()
		}
	}

	if reg.Email != "" {
		if err := ValidateEmail(reg.Email); err != nil {
			errs[FieldEmail] = err.(*Error)
		}
	}

	if reg.Phone != "" {
		if err := ValidatePhone(reg.Phone); err != nil {
			errs[FieldPhone] = err.(*Error)
		}
	}

	if err := ValidateEvents(reg.Events); err != nil {
		errs[FieldEvents] = err.(*Error)
	}

	if err := ValidatePaperTopic(reg.Events, reg.PaperTopic); err != nil {
		errs[FieldPaperTopic] = err.(*Error)
	}

	if reg.Receipt == nil {
		errs[FieldReceipt] = NewReceiptMissingError()
	}

	if !termsAccepted {
		errs[FieldTerms] = NewTermsNotAcceptedError()
	}

	return errs
}
