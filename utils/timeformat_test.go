package utils

import (
	"testing"
	"time"
)

func TestRelativeTimeBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age  time.Duration
		want string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{60 * time.Second, "1 minute ago"}, // exact boundary rolls up
		{5 * time.Minute, "5 minutes ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "1 day ago"}, // exact boundary rolls up
		{6 * 24 * time.Hour, "6 days ago"},
	}
	for _, tc := range cases {
		if got := RelativeTime(now.Add(-tc.age), now); got != tc.want {
			t.Errorf("RelativeTime(-%v) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestRelativeTimeFallsBackToAbsoluteDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	stamp := now.Add(-7 * 24 * time.Hour)
	if got := RelativeTime(stamp, now); got != "Jun 8, 2025 12:00" {
		t.Fatalf("week-old timestamp = %q, want absolute date", got)
	}
}
