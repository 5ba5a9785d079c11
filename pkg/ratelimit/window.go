package ratelimit

import (
	"log/slog"
	"time"
)

// NextWindowReset computes the candidate reset instant for a brand-new
// counter: midnight (00:00:00.000) of the next calendar day in the given
// IANA timezone, converted back to an absolute instant.
//
// The zone defaults to UTC when tz is empty. An unloadable zone also falls
// back to UTC; a cosmetic client input must never turn into a denial or an
// error.
//
// Existing records keep their stored reset time; this value is only used
// when a record is created.
func NextWindowReset(now time.Time, tz string) time.Time {
	loc := time.UTC
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			slog.Warn("invalid timezone for rate limit window, falling back to UTC",
				slog.String("timezone", tz),
				slog.String("error", err.Error()))
		} else {
			loc = l
		}
	}

	local := now.In(loc)
	// time.Date normalizes Day()+1 across month and year boundaries.
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}
