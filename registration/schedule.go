package registration

import (
	"fmt"
	"time"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

var (
	// SubmissionDeadline gates submissions: anything after it is rejected
	// before a request is made.
	SubmissionDeadline = time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	// CountdownClose is the close time shown on the countdown banner.
	CountdownClose = time.Date(2026, time.February, 5, 23, 59, 59, 0, ist)

	EventDate = time.Date(2026, time.February, 7, 0, 0, 0, 0, ist)
)

func IsClosed(now time.Time) bool {
	return now.After(SubmissionDeadline)
}

func CheckDeadline(now time.Time) error {
	if IsClosed(now) {
		return NewRegistrationIsClosedError(SubmissionDeadline)
	}
	return nil
}

// Countdown renders the banner text for the time left until CountdownClose.
func Countdown(now time.Time) string {
	diff := CountdownClose.Sub(now)
	if diff <= 0 {
		return "Registration Closed"
	}

	day := 24 * time.Hour
	days := int(diff / day)
	hours := int((diff % day) / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("Registration closes in %d %s!", days, plural(days, "day"))
	case hours > 0:
		return fmt.Sprintf("Registration closes in %d %s and %d %s!", hours, plural(hours, "hour"), minutes, plural(minutes, "minute"))
	default:
		return fmt.Sprintf("Registration closes in %d %s!", minutes, plural(minutes, "minute"))
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}
