package timesheet

import (
	"time"

	"sphere-timecontrol/internal/punch"
)

type Status string

const (
	StatusAbsent     Status = "ABSENT"
	StatusPresent    Status = "PRESENT"
	StatusNoCheckOut Status = "NO_CHECK_OUT"
	StatusIrregular  Status = "IRREGULAR"
)

// Config carries the per-company attendance policy. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// LateAfter is the time of day after which the first check-in counts as late.
	LateAfter time.Duration
	// EarlyBefore is the time of day before which the last check-out counts as an early leave.
	EarlyBefore time.Duration
	// RegularPerDay is the regular working time per day; overtime accrues beyond it.
	RegularPerDay time.Duration
}

func DefaultConfig() Config {
	return Config{
		LateAfter:     9*time.Hour + 15*time.Minute,
		EarlyBefore:   16*time.Hour + 45*time.Minute,
		RegularPerDay: 8 * time.Hour,
	}
}

// Summary is one employee's derived attendance for one calendar date.
// It is recomputed from raw events on demand, never treated as a source
// of truth.
type Summary struct {
	EmployeeID     string
	Date           string
	Totals         Totals
	Status         Status
	IsLate         bool
	IsEarlyLeave   bool
	Overtime       time.Duration
	CheckIns       int
	OnTimeCheckIns int
	FirstCheckIn   *time.Time
	LastCheckOut   *time.Time
}

// DaySummary derives one day's summary from that day's ordered events.
func DaySummary(employeeID, date string, events []punch.PunchEvent, cfg Config) Summary {
	s := Summary{
		EmployeeID: employeeID,
		Date:       date,
		Totals:     Aggregate(events),
	}

	if len(events) == 0 {
		s.Status = StatusAbsent
		return s
	}

	var checkIns, checkOuts int
	for _, e := range events {
		switch e.Kind {
		case punch.KindCheckIn:
			checkIns++
			if cfg.OnTime(e.OccurredAt) {
				s.OnTimeCheckIns++
			}
			if s.FirstCheckIn == nil {
				t := e.OccurredAt
				s.FirstCheckIn = &t
			}
		case punch.KindCheckOut:
			checkOuts++
			t := e.OccurredAt
			s.LastCheckOut = &t
		}
	}

	s.CheckIns = checkIns

	if s.FirstCheckIn != nil {
		s.IsLate = timeOfDay(*s.FirstCheckIn) > cfg.LateAfter
	}
	if s.LastCheckOut != nil {
		s.IsEarlyLeave = timeOfDay(*s.LastCheckOut) < cfg.EarlyBefore
	}

	switch {
	case checkIns == 0:
		// stray break/checkout events without a check-in
		s.Status = StatusIrregular
	case checkIns > checkOuts:
		s.Status = StatusNoCheckOut
	case s.IsLate || s.IsEarlyLeave:
		s.Status = StatusIrregular
	default:
		s.Status = StatusPresent
	}

	if s.Totals.Worked > cfg.RegularPerDay {
		s.Overtime = s.Totals.Worked - cfg.RegularPerDay
	}
	return s
}

// OnTime reports whether a check-in beats the late cutoff.
func (c Config) OnTime(checkIn time.Time) bool {
	return timeOfDay(checkIn) <= c.LateAfter
}

func timeOfDay(t time.Time) time.Duration {
	t = t.UTC()
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
