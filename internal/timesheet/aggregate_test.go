package timesheet_test

import (
	"testing"
	"time"

	"sphere-timecontrol/internal/punch"
	"sphere-timecontrol/internal/timesheet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hours, minutes int) time.Time {
	return day.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}

func ev(kind punch.Kind, t time.Time) punch.PunchEvent {
	return punch.PunchEvent{
		ID:         uuid.New(),
		Kind:       kind,
		OccurredAt: t,
	}
}

func TestAggregate_Empty(t *testing.T) {
	totals := timesheet.Aggregate(nil)
	assert.Zero(t, totals.Worked)
	assert.Zero(t, totals.Break)
}

func TestAggregate_RegularDay(t *testing.T) {
	totals := timesheet.Aggregate([]punch.PunchEvent{
		ev(punch.KindCheckIn, at(9, 0)),
		ev(punch.KindBreakStart, at(12, 0)),
		ev(punch.KindBreakEnd, at(12, 30)),
		ev(punch.KindCheckOut, at(17, 0)),
	})

	// break is reported alongside worked time, never subtracted
	assert.Equal(t, 8*time.Hour, totals.Worked)
	assert.Equal(t, 30*time.Minute, totals.Break)
}

func TestAggregate_BreakAndLunch(t *testing.T) {
	totals := timesheet.Aggregate([]punch.PunchEvent{
		ev(punch.KindCheckIn, at(9, 0)),
		ev(punch.KindBreakStart, at(10, 30)),
		ev(punch.KindBreakEnd, at(10, 45)),
		ev(punch.KindLunchStart, at(12, 0)),
		ev(punch.KindLunchEnd, at(13, 0)),
		ev(punch.KindCheckOut, at(18, 0)),
	})

	assert.Equal(t, 9*time.Hour, totals.Worked)
	assert.Equal(t, 75*time.Minute, totals.Break)
}

func TestAggregate_TrailingOpenCheckIn(t *testing.T) {
	totals := timesheet.Aggregate([]punch.PunchEvent{
		ev(punch.KindCheckIn, at(9, 0)),
	})
	assert.Zero(t, totals.Worked)
}

func TestAggregate_StrayEndEvents(t *testing.T) {
	totals := timesheet.Aggregate([]punch.PunchEvent{
		ev(punch.KindCheckOut, at(17, 0)),
		ev(punch.KindBreakEnd, at(17, 30)),
		ev(punch.KindLunchEnd, at(18, 0)),
	})
	assert.Zero(t, totals.Worked)
	assert.Zero(t, totals.Break)
}

func TestAggregate_DoubleCheckInOverwrites(t *testing.T) {
	// a corrected record can leave two check-ins; the later one wins
	totals := timesheet.Aggregate([]punch.PunchEvent{
		ev(punch.KindCheckIn, at(8, 0)),
		ev(punch.KindCheckIn, at(9, 0)),
		ev(punch.KindCheckOut, at(17, 0)),
	})
	assert.Equal(t, 8*time.Hour, totals.Worked)
}

func TestAggregate_ClampsNegativeDelta(t *testing.T) {
	totals := timesheet.Aggregate([]punch.PunchEvent{
		ev(punch.KindCheckIn, at(17, 0)),
		ev(punch.KindCheckOut, at(9, 0)),
	})
	assert.Zero(t, totals.Worked)
}

func TestAggregateByDay_SplitsOnUTCDate(t *testing.T) {
	nextDay := day.AddDate(0, 0, 1)
	byDay := timesheet.AggregateByDay([]punch.PunchEvent{
		ev(punch.KindCheckIn, at(9, 0)),
		ev(punch.KindCheckOut, at(17, 0)),
		ev(punch.KindCheckIn, nextDay.Add(10*time.Hour)),
		ev(punch.KindCheckOut, nextDay.Add(16*time.Hour)),
	})

	assert.Len(t, byDay, 2)
	assert.Equal(t, 8*time.Hour, byDay["2026-03-02"].Worked)
	assert.Equal(t, 6*time.Hour, byDay["2026-03-03"].Worked)

	total := timesheet.AggregateRange([]punch.PunchEvent{
		ev(punch.KindCheckIn, at(9, 0)),
		ev(punch.KindCheckOut, at(17, 0)),
		ev(punch.KindCheckIn, nextDay.Add(10*time.Hour)),
		ev(punch.KindCheckOut, nextDay.Add(16*time.Hour)),
	})
	assert.Equal(t, 14*time.Hour, total.Worked)
}

func TestDaySummary_Statuses(t *testing.T) {
	cfg := timesheet.DefaultConfig()

	t.Run("absent", func(t *testing.T) {
		s := timesheet.DaySummary("emp", "2026-03-02", nil, cfg)
		assert.Equal(t, timesheet.StatusAbsent, s.Status)
		assert.Nil(t, s.FirstCheckIn)
	})

	t.Run("present", func(t *testing.T) {
		s := timesheet.DaySummary("emp", "2026-03-02", []punch.PunchEvent{
			ev(punch.KindCheckIn, at(9, 0)),
			ev(punch.KindCheckOut, at(17, 0)),
		}, cfg)
		assert.Equal(t, timesheet.StatusPresent, s.Status)
		assert.False(t, s.IsLate)
		assert.False(t, s.IsEarlyLeave)
		assert.Zero(t, s.Overtime)
	})

	t.Run("no check out", func(t *testing.T) {
		s := timesheet.DaySummary("emp", "2026-03-02", []punch.PunchEvent{
			ev(punch.KindCheckIn, at(9, 0)),
		}, cfg)
		assert.Equal(t, timesheet.StatusNoCheckOut, s.Status)
	})

	t.Run("late check-in is irregular", func(t *testing.T) {
		s := timesheet.DaySummary("emp", "2026-03-02", []punch.PunchEvent{
			ev(punch.KindCheckIn, at(9, 20)),
			ev(punch.KindCheckOut, at(17, 0)),
		}, cfg)
		assert.Equal(t, timesheet.StatusIrregular, s.Status)
		assert.True(t, s.IsLate)
	})

	t.Run("boundary check-in is on time", func(t *testing.T) {
		s := timesheet.DaySummary("emp", "2026-03-02", []punch.PunchEvent{
			ev(punch.KindCheckIn, at(9, 15)),
			ev(punch.KindCheckOut, at(17, 0)),
		}, cfg)
		assert.False(t, s.IsLate)
		assert.Equal(t, timesheet.StatusPresent, s.Status)
	})

	t.Run("early leave is irregular", func(t *testing.T) {
		s := timesheet.DaySummary("emp", "2026-03-02", []punch.PunchEvent{
			ev(punch.KindCheckIn, at(9, 0)),
			ev(punch.KindCheckOut, at(16, 0)),
		}, cfg)
		assert.Equal(t, timesheet.StatusIrregular, s.Status)
		assert.True(t, s.IsEarlyLeave)
	})

	t.Run("stray events without check-in", func(t *testing.T) {
		s := timesheet.DaySummary("emp", "2026-03-02", []punch.PunchEvent{
			ev(punch.KindCheckOut, at(17, 0)),
		}, cfg)
		assert.Equal(t, timesheet.StatusIrregular, s.Status)
	})

	t.Run("overtime beyond regular hours", func(t *testing.T) {
		s := timesheet.DaySummary("emp", "2026-03-02", []punch.PunchEvent{
			ev(punch.KindCheckIn, at(9, 0)),
			ev(punch.KindCheckOut, at(19, 30)),
		}, cfg)
		assert.Equal(t, 2*time.Hour+30*time.Minute, s.Overtime)
	})
}

func TestDaySummary_CheckInCounts(t *testing.T) {
	cfg := timesheet.DefaultConfig()

	s := timesheet.DaySummary("emp", "2026-03-02", []punch.PunchEvent{
		ev(punch.KindCheckIn, at(9, 0)),
		ev(punch.KindCheckOut, at(12, 0)),
		ev(punch.KindCheckIn, at(13, 30)),
		ev(punch.KindCheckOut, at(17, 0)),
	}, cfg)

	assert.Equal(t, 2, s.CheckIns)
	// the afternoon return falls past the cutoff
	assert.Equal(t, 1, s.OnTimeCheckIns)
	assert.False(t, s.IsLate)
	assert.Equal(t, timesheet.StatusPresent, s.Status)
	assert.Equal(t, 6*time.Hour+30*time.Minute, s.Totals.Worked)
}
