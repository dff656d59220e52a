package analytics

import (
	"testing"
	"time"
)

func TestResolveWindowAllPeriods(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		period string
		start  time.Time
	}{
		{Period7d, time.Date(2026, 3, 8, 10, 30, 0, 0, time.UTC)},
		{Period30d, time.Date(2026, 2, 13, 10, 30, 0, 0, time.UTC)},
		{Period90d, time.Date(2025, 12, 15, 10, 30, 0, 0, time.UTC)},
		{Period1y, time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		w := ResolveWindow(tc.period, now)
		if !w.End.Equal(now) {
			t.Errorf("%s: end should equal now, got %v", tc.period, w.End)
		}
		if !w.Start.Equal(tc.start) {
			t.Errorf("%s: expected start %v, got %v", tc.period, tc.start, w.Start)
		}
		if w.Start.After(w.End) {
			t.Errorf("%s: start after end", tc.period)
		}
	}
}

func TestResolveWindowUnknownDefaultsTo30d(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	unknown := ResolveWindow("6w", now)
	def := ResolveWindow(Period30d, now)

	if !unknown.Start.Equal(def.Start) || !unknown.End.Equal(def.End) {
		t.Fatalf("unknown period should behave as 30d: got %+v want %+v", unknown, def)
	}
}

func TestResolveWindowRespectsCalendarBoundaries(t *testing.T) {
	// Leap day: one calendar year back from 2024-02-29 lands on 2023-02-28
	// per Go's date arithmetic, not on a fixed 365-day offset.
	now := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	w := ResolveWindow(Period1y, now)
	want := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, w.Start)
	}
}

func TestWindowContainsIsInclusive(t *testing.T) {
	w := PeriodWindow{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	if !w.Contains(w.Start) || !w.Contains(w.End) {
		t.Fatalf("window bounds must be inclusive")
	}
	if w.Contains(w.Start.Add(-time.Nanosecond)) || w.Contains(w.End.Add(time.Nanosecond)) {
		t.Fatalf("window must exclude instants outside bounds")
	}
}
