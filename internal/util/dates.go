package util

import "time"

// WholeDaysBetween returns the number of full days elapsed from since to now,
// never negative.
func WholeDaysBetween(now time.Time, since time.Time) int {
	if since.IsZero() || now.Before(since) {
		return 0
	}

	return int(now.Sub(since).Hours() / 24)
}
