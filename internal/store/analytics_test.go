package store

import (
	"testing"
	"time"
)

func TestStartOfDayWindow(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	midnight := time.Date(2026, time.August, 31, 0, 0, 0, 0, loc)

	cases := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{"midnight maps to itself", midnight, midnight},
		{"midday", time.Date(2026, time.August, 31, 13, 45, 12, 0, loc), midnight},
		{"last second of the day", time.Date(2026, time.August, 31, 23, 59, 59, 0, loc), midnight},
		{"first instant of the next day", time.Date(2026, time.September, 1, 0, 0, 0, 0, loc), midnight.AddDate(0, 0, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := startOfDay(tc.at)
			if !got.Equal(tc.want) {
				t.Errorf("startOfDay(%v) = %v, want %v", tc.at, got, tc.want)
			}
			if got.Location() != loc {
				t.Errorf("expected the input's location to be kept, got %v", got.Location())
			}
		})
	}

	// The stats window is half-open: a sale at 23:59:59 falls inside
	// [start, start+24h), one at next-day 00:00:00 does not.
	dayEnd := startOfDay(midnight).AddDate(0, 0, 1)
	lastSecond := time.Date(2026, time.August, 31, 23, 59, 59, 0, loc)
	if lastSecond.Before(midnight) || !lastSecond.Before(dayEnd) {
		t.Error("23:59:59 should fall inside the day window")
	}
	nextMidnight := time.Date(2026, time.September, 1, 0, 0, 0, 0, loc)
	if nextMidnight.Before(dayEnd) {
		t.Error("next-day 00:00:00 should fall outside the day window")
	}
}
