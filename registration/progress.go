package registration

import (
	"math"
	"strings"
)

// Progress returns how much of the form is filled in, as a whole percentage.
// The required text fields count one each, plus one for having any event
// selected and one for accepting the terms.
func Progress(reg Registration, termsAccepted bool) int {
	total := len(RequiredFields) + 2
	filled := 0

	for _, f := range RequiredFields {
		value, _ := reg.Text(f)
		if strings.TrimSpace(value) != "" {
			filled++
		}
	}
	if len(reg.Events) > 0 {
		filled++
	}
	if termsAccepted {
		filled++
	}

	return int(math.Round(float64(filled) / float64(total) * 100))
}
