package punch_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"sphere-timecontrol/internal/events"
	"sphere-timecontrol/internal/messaging/kafka"
	"sphere-timecontrol/internal/punch"
	puncherrors "sphere-timecontrol/internal/punch/errors"
	"sphere-timecontrol/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

var (
	testCompanyID  = uuid.New()
	testEmployeeID = uuid.New()
)

type fakeRepo struct {
	latest  *punch.PunchEvent
	byID    map[string]*punch.PunchEvent
	created []*punch.PunchEvent
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*punch.PunchEvent)}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) punch.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, p *punch.PunchEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, p)
	f.byID[p.ID.String()] = p
	f.latest = p
	return nil
}

func (f *fakeRepo) FindLatestByEmployee(ctx context.Context, companyID, employeeID string) (*punch.PunchEvent, error) {
	return f.latest, f.err
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*punch.PunchEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeRepo) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]punch.PunchEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []punch.PunchEvent
	for _, p := range f.created {
		if p.EmployeeID.String() == employeeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) ([]punch.PunchEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]punch.PunchEvent, 0, len(f.created))
	for _, p := range f.created {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *punch.PunchEvent) error {
	f.byID[p.ID.String()] = p
	return f.err
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	delete(f.byID, id)
	return f.err
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
	err     error
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}

func setupServiceTest(t *testing.T, repo punch.Repository, outbox kafka.OutboxRepository) (punch.Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	return punch.NewServiceWithOutbox(db, repo, outbox), mock, func() { db.Close() }
}

func testTenant() tenant.Context {
	return tenant.Context{CompanyID: testCompanyID.String(), Subdomain: "acme"}
}

func TestPunchService_CheckIn(t *testing.T) {
	repo := newFakeRepo()
	outbox := &fakeOutbox{}
	svc, mock, cleanup := setupServiceTest(t, repo, outbox)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Punch(context.Background(), testTenant(), testEmployeeID.String(), punch.KindCheckIn, punch.PunchRequest{})

	assert.NoError(t, err)
	assert.Equal(t, string(punch.KindCheckIn), resp.Kind)
	assert.Len(t, repo.created, 1)

	// outbox row shares the transaction with the punch insert
	assert.Len(t, outbox.created, 1)
	out := outbox.created[0]
	assert.Equal(t, events.PunchRecordedTopic, out.Topic)
	assert.Equal(t, "punch_recorded", out.EventType)
	assert.Equal(t, kafka.OutboxStatusPending, out.Status)

	var evt events.PunchRecordedEvent
	assert.NoError(t, json.Unmarshal(out.Payload, &evt))
	assert.Equal(t, testEmployeeID.String(), evt.EmployeeID)
	assert.Equal(t, string(punch.KindCheckIn), evt.Kind)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPunchService_DoubleCheckInRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.latest = &punch.PunchEvent{
		ID:         uuid.New(),
		CompanyID:  testCompanyID,
		EmployeeID: testEmployeeID,
		Kind:       punch.KindCheckIn,
		OccurredAt: time.Now().UTC().Add(-time.Hour),
	}
	svc, mock, cleanup := setupServiceTest(t, repo, nil)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Punch(context.Background(), testTenant(), testEmployeeID.String(), punch.KindCheckIn, punch.PunchRequest{})

	assert.ErrorIs(t, err, puncherrors.ErrAlreadyCheckedIn)
	assert.Empty(t, repo.created)
}

func TestPunchService_InvalidIDs(t *testing.T) {
	svc, _, cleanup := setupServiceTest(t, newFakeRepo(), nil)
	defer cleanup()

	_, err := svc.Punch(context.Background(), tenant.Context{CompanyID: "nope"}, testEmployeeID.String(), punch.KindCheckIn, punch.PunchRequest{})
	assert.ErrorIs(t, err, puncherrors.ErrInvalidCompanyID)

	_, err = svc.Punch(context.Background(), testTenant(), "nope", punch.KindCheckIn, punch.PunchRequest{})
	assert.ErrorIs(t, err, puncherrors.ErrInvalidEmployeeID)
}

func TestPunchService_GetStatus(t *testing.T) {
	repo := newFakeRepo()
	svc, _, cleanup := setupServiceTest(t, repo, nil)
	defer cleanup()

	resp, err := svc.GetStatus(context.Background(), testTenant(), testEmployeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, string(punch.StateCheckedOut), resp.State)
	assert.Nil(t, resp.LastKind)

	repo.latest = &punch.PunchEvent{
		ID:         uuid.New(),
		Kind:       punch.KindBreakStart,
		OccurredAt: time.Now().UTC(),
	}
	resp, err = svc.GetStatus(context.Background(), testTenant(), testEmployeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, string(punch.StateOnBreak), resp.State)
	assert.NotNil(t, resp.Since)
}

func TestPunchService_GetAll_ScopesToActor(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := setupServiceTest(t, repo, nil)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Punch(context.Background(), testTenant(), testEmployeeID.String(), punch.KindCheckIn, punch.PunchRequest{})
	assert.NoError(t, err)

	other := &punch.PunchEvent{
		ID:         uuid.New(),
		CompanyID:  testCompanyID,
		EmployeeID: uuid.New(),
		Kind:       punch.KindCheckIn,
		OccurredAt: time.Now().UTC(),
	}
	repo.created = append(repo.created, other)

	from := time.Now().UTC().AddDate(0, 0, -1)
	to := time.Now().UTC().AddDate(0, 0, 1)

	own, err := svc.GetAll(context.Background(), testTenant(), testEmployeeID.String(), false, from, to)
	assert.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.GetAll(context.Background(), testTenant(), testEmployeeID.String(), true, from, to)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.GetAll(context.Background(), testTenant(), "not-a-uuid", false, from, to)
	assert.ErrorIs(t, err, puncherrors.ErrInvalidEmployeeID)
}

func TestPunchService_Correct(t *testing.T) {
	repo := newFakeRepo()
	existing := &punch.PunchEvent{
		ID:         uuid.New(),
		CompanyID:  testCompanyID,
		EmployeeID: testEmployeeID,
		Kind:       punch.KindCheckIn,
		OccurredAt: time.Now().UTC().Add(-2 * time.Hour),
	}
	repo.byID[existing.ID.String()] = existing

	svc, mock, cleanup := setupServiceTest(t, repo, nil)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	corrected := time.Now().UTC().Add(-3 * time.Hour).Format(time.RFC3339)
	notes := "forgot badge, manual entry"
	resp, err := svc.Correct(context.Background(), testTenant(), testEmployeeID.String(), false, existing.ID.String(), punch.CorrectPunchRequest{
		OccurredAt: &corrected,
		Notes:      &notes,
	})

	assert.NoError(t, err)
	assert.Equal(t, corrected, resp.OccurredAt)
	assert.Equal(t, &notes, resp.Notes)
}

func TestPunchService_Correct_WindowAndOwnership(t *testing.T) {
	repo := newFakeRepo()
	existing := &punch.PunchEvent{
		ID:         uuid.New(),
		CompanyID:  testCompanyID,
		EmployeeID: testEmployeeID,
		Kind:       punch.KindCheckIn,
		OccurredAt: time.Now().UTC(),
	}
	repo.byID[existing.ID.String()] = existing

	svc, mock, cleanup := setupServiceTest(t, repo, nil)
	defer cleanup()

	// too far in the future
	mock.ExpectBegin()
	mock.ExpectRollback()
	future := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	_, err := svc.Correct(context.Background(), testTenant(), testEmployeeID.String(), false, existing.ID.String(), punch.CorrectPunchRequest{OccurredAt: &future})
	assert.ErrorIs(t, err, puncherrors.ErrCorrectionTooFarFuture)

	// too far in the past
	mock.ExpectBegin()
	mock.ExpectRollback()
	past := time.Now().UTC().AddDate(0, 0, -31).Format(time.RFC3339)
	_, err = svc.Correct(context.Background(), testTenant(), testEmployeeID.String(), false, existing.ID.String(), punch.CorrectPunchRequest{OccurredAt: &past})
	assert.ErrorIs(t, err, puncherrors.ErrCorrectionTooFarPast)

	// someone else's record without elevated rights
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Correct(context.Background(), testTenant(), uuid.NewString(), false, existing.ID.String(), punch.CorrectPunchRequest{})
	assert.ErrorIs(t, err, puncherrors.ErrCorrectionNotOwned)

	// admins may edit any record
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Correct(context.Background(), testTenant(), uuid.NewString(), true, existing.ID.String(), punch.CorrectPunchRequest{})
	assert.NoError(t, err)

	// unknown id
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Correct(context.Background(), testTenant(), testEmployeeID.String(), false, uuid.NewString(), punch.CorrectPunchRequest{})
	assert.ErrorIs(t, err, puncherrors.ErrPunchNotFound)
}

func TestPunchService_Delete(t *testing.T) {
	repo := newFakeRepo()
	existing := &punch.PunchEvent{ID: uuid.New(), CompanyID: testCompanyID, EmployeeID: testEmployeeID}
	repo.byID[existing.ID.String()] = existing

	svc, mock, cleanup := setupServiceTest(t, repo, nil)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	assert.NoError(t, svc.Delete(context.Background(), testTenant(), existing.ID.String()))
	assert.Empty(t, repo.byID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
