package ptr

import "time"

func String(s string) *string {
	return &s
}

func Duration(d time.Duration) *time.Duration {
	return &d
}
