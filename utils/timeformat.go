package utils

import (
	"fmt"
	"time"
)

// RelativeTime renders how long ago t happened relative to now, using
// coarse buckets: under a minute is "just now", then minutes, hours and
// days, and anything a week or older falls back to the absolute date.
// Exact boundary values (60s, 24h, 7d) land in the coarser bucket.
func RelativeTime(t, now time.Time) string {
	elapsed := now.Sub(t)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return pluralize(int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return pluralize(int(elapsed.Hours()), "hour")
	case elapsed < 7*24*time.Hour:
		return pluralize(int(elapsed.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006 15:04")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
