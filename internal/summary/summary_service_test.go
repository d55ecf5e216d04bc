package summary_test

import (
	"context"
	"testing"
	"time"

	"sphere-timecontrol/internal/events"
	"sphere-timecontrol/internal/punch"
	puncherrors "sphere-timecontrol/internal/punch/errors"
	"sphere-timecontrol/internal/summary"
	"sphere-timecontrol/internal/tenant"
	"sphere-timecontrol/internal/timesheet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	testCompanyID  = uuid.New()
	testEmployeeID = uuid.New()
)

type fakeSummaryRepo struct {
	upserted  []*summary.DailySummary
	byCompany []summary.DailySummary
	byEmp     []summary.DailySummary
	err       error
}

func (f *fakeSummaryRepo) Upsert(ctx context.Context, s *summary.DailySummary) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, s)
	return nil
}

func (f *fakeSummaryRepo) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID, from, to string) ([]summary.DailySummary, error) {
	return f.byEmp, f.err
}

func (f *fakeSummaryRepo) FindByCompanyAndRange(ctx context.Context, companyID, from, to string) ([]summary.DailySummary, error) {
	return f.byCompany, f.err
}

type fakePunchRepo struct {
	punch.Repository
	events []punch.PunchEvent
	err    error
}

func (f *fakePunchRepo) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]punch.PunchEvent, error) {
	return f.events, f.err
}

func event(kind punch.Kind, at time.Time) punch.PunchEvent {
	return punch.PunchEvent{
		ID:         uuid.New(),
		CompanyID:  testCompanyID,
		EmployeeID: testEmployeeID,
		Kind:       kind,
		OccurredAt: at,
	}
}

func punchRecorded(kind punch.Kind, at time.Time) events.PunchRecordedEvent {
	return events.PunchRecordedEvent{
		EventType:  "punch_recorded",
		PunchID:    uuid.NewString(),
		CompanyID:  testCompanyID.String(),
		EmployeeID: testEmployeeID.String(),
		Kind:       string(kind),
		OccurredAt: at,
	}
}

func TestApply_ProjectsWholeDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo := &fakeSummaryRepo{}
	punchRepo := &fakePunchRepo{events: []punch.PunchEvent{
		event(punch.KindCheckIn, day.Add(9*time.Hour)),
		event(punch.KindLunchStart, day.Add(12*time.Hour)),
		event(punch.KindLunchEnd, day.Add(13*time.Hour)),
		event(punch.KindCheckOut, day.Add(18*time.Hour)),
	}}
	svc := summary.NewService(repo, punchRepo, timesheet.DefaultConfig())

	err := svc.Apply(context.Background(), punchRecorded(punch.KindCheckOut, day.Add(18*time.Hour)))

	assert.NoError(t, err)
	assert.Len(t, repo.upserted, 1)
	row := repo.upserted[0]
	assert.Equal(t, "2026-03-02", row.Date)
	assert.Equal(t, string(timesheet.StatusPresent), row.Status)
	// worked spans the full 09:00-18:00 day, the lunch hour reported alongside
	assert.Equal(t, 540, row.WorkedMinutes)
	assert.Equal(t, 60, row.BreakMinutes)
	assert.Equal(t, 60, row.OvertimeMinutes)
	assert.False(t, row.IsLate)
	assert.False(t, row.IsEarlyLeave)
	assert.NotNil(t, row.FirstCheckIn)
	assert.NotNil(t, row.LastCheckOut)
}

func TestApply_OpenDayBecomesNoCheckOut(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo := &fakeSummaryRepo{}
	punchRepo := &fakePunchRepo{events: []punch.PunchEvent{
		event(punch.KindCheckIn, day.Add(9*time.Hour)),
	}}
	svc := summary.NewService(repo, punchRepo, timesheet.DefaultConfig())

	err := svc.Apply(context.Background(), punchRecorded(punch.KindCheckIn, day.Add(9*time.Hour)))

	assert.NoError(t, err)
	assert.Len(t, repo.upserted, 1)
	row := repo.upserted[0]
	assert.Equal(t, string(timesheet.StatusNoCheckOut), row.Status)
	assert.Equal(t, 0, row.WorkedMinutes)
}

func TestApply_InvalidIDs(t *testing.T) {
	svc := summary.NewService(&fakeSummaryRepo{}, &fakePunchRepo{}, timesheet.DefaultConfig())

	evt := punchRecorded(punch.KindCheckIn, time.Now())
	evt.CompanyID = "not-a-uuid"
	assert.ErrorIs(t, svc.Apply(context.Background(), evt), puncherrors.ErrInvalidCompanyID)

	evt = punchRecorded(punch.KindCheckIn, time.Now())
	evt.EmployeeID = "not-a-uuid"
	assert.ErrorIs(t, svc.Apply(context.Background(), evt), puncherrors.ErrInvalidEmployeeID)
}

func TestGetAll_ScopesToActor(t *testing.T) {
	own := []summary.DailySummary{{
		EmployeeID: testEmployeeID,
		Date:       "2026-03-02",
		Status:     string(timesheet.StatusPresent),
	}}
	all := append(own, summary.DailySummary{
		EmployeeID: uuid.New(),
		Date:       "2026-03-02",
		Status:     string(timesheet.StatusAbsent),
	})
	repo := &fakeSummaryRepo{byEmp: own, byCompany: all}
	svc := summary.NewService(repo, &fakePunchRepo{}, timesheet.DefaultConfig())

	tc := tenant.Context{CompanyID: testCompanyID.String()}
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetAll(context.Background(), tc, testEmployeeID.String(), false, from, to)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)

	resp, err = svc.GetAll(context.Background(), tc, testEmployeeID.String(), true, from, to)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)

	_, err = svc.GetAll(context.Background(), tc, "not-a-uuid", false, from, to)
	assert.ErrorIs(t, err, puncherrors.ErrInvalidEmployeeID)
}
