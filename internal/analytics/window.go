package analytics

import "time"

// Period codes accepted by the dashboard.
const (
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
	Period1y  = "1y"

	// PeriodDefault is applied when no period is supplied.
	PeriodDefault = Period30d
)

// PeriodWindow is the inclusive [start, end] range metrics are computed over.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow derives the metric window for a period code ending at now.
// Offsets use calendar arithmetic so month and year boundaries are respected.
// Unrecognized codes fall back to the 30-day window.
func ResolveWindow(period string, now time.Time) PeriodWindow {
	end := now
	var start time.Time
	switch period {
	case Period7d:
		start = end.AddDate(0, 0, -7)
	case Period90d:
		start = end.AddDate(0, 0, -90)
	case Period1y:
		start = end.AddDate(-1, 0, 0)
	default:
		start = end.AddDate(0, 0, -30)
	}
	return PeriodWindow{Start: start, End: end}
}

// Contains reports whether t falls inside the inclusive window.
func (w PeriodWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
