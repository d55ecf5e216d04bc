package timesheet

import (
	"time"

	"sphere-timecontrol/internal/punch"
)

// Totals holds the paired durations of one employee over one period.
// Break time is reported alongside worked time, never subtracted from it:
// Worked covers the full CheckIn->CheckOut wall clock.
type Totals struct {
	Worked time.Duration `json:"worked"`
	Break  time.Duration `json:"break"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{Worked: t.Worked + o.Worked, Break: t.Break + o.Break}
}

// Aggregate folds a chronologically ordered punch sequence into totals.
// It is total over any input: unmatched end events contribute nothing,
// a trailing open start contributes nothing, and a later CheckIn silently
// overwrites a pending one. Negative deltas from out-of-order timestamps
// clamp to zero. Callers must sort by occurred_at first.
func Aggregate(events []punch.PunchEvent) Totals {
	var totals Totals

	// at most one open start per pair
	open := map[punch.Kind]time.Time{}

	for _, e := range events {
		switch e.Kind {
		case punch.KindCheckIn, punch.KindBreakStart, punch.KindLunchStart:
			open[e.Kind] = e.OccurredAt

		case punch.KindCheckOut:
			if start, ok := open[punch.KindCheckIn]; ok {
				totals.Worked += clamp(e.OccurredAt.Sub(start))
				delete(open, punch.KindCheckIn)
			}

		case punch.KindBreakEnd:
			if start, ok := open[punch.KindBreakStart]; ok {
				totals.Break += clamp(e.OccurredAt.Sub(start))
				delete(open, punch.KindBreakStart)
			}

		case punch.KindLunchEnd:
			if start, ok := open[punch.KindLunchStart]; ok {
				totals.Break += clamp(e.OccurredAt.Sub(start))
				delete(open, punch.KindLunchStart)
			}
		}
	}

	return totals
}

// AggregateByDay splits the sequence per calendar date (UTC) and aggregates
// each day independently. Intervals never span midnight in this model.
func AggregateByDay(events []punch.PunchEvent) map[string]Totals {
	byDay := map[string][]punch.PunchEvent{}
	for _, e := range events {
		day := e.OccurredAt.UTC().Format("2006-01-02")
		byDay[day] = append(byDay[day], e)
	}

	out := make(map[string]Totals, len(byDay))
	for day, dayEvents := range byDay {
		out[day] = Aggregate(dayEvents)
	}
	return out
}

// AggregateRange is the multi-day total: per-day aggregation summed.
func AggregateRange(events []punch.PunchEvent) Totals {
	var totals Totals
	for _, t := range AggregateByDay(events) {
		totals = totals.Add(t)
	}
	return totals
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
