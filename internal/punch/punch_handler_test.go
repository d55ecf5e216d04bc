package punch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sphere-timecontrol/internal/punch"
	puncherrors "sphere-timecontrol/internal/punch/errors"
	"sphere-timecontrol/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	punchFn     func(ctx context.Context, tc tenant.Context, employeeID string, kind punch.Kind, req punch.PunchRequest) (punch.PunchResponse, error)
	getStatusFn func(ctx context.Context, tc tenant.Context, employeeID string) (punch.StatusResponse, error)
	getAllFn    func(ctx context.Context, tc tenant.Context, actorID string, canReadAll bool, from, to time.Time) ([]punch.PunchResponse, error)
	correctFn   func(ctx context.Context, tc tenant.Context, actorID string, canEditAll bool, id string, req punch.CorrectPunchRequest) (punch.PunchResponse, error)
	deleteFn    func(ctx context.Context, tc tenant.Context, id string) error
}

func (f *fakeService) Punch(ctx context.Context, tc tenant.Context, employeeID string, kind punch.Kind, req punch.PunchRequest) (punch.PunchResponse, error) {
	return f.punchFn(ctx, tc, employeeID, kind, req)
}

func (f *fakeService) GetStatus(ctx context.Context, tc tenant.Context, employeeID string) (punch.StatusResponse, error) {
	return f.getStatusFn(ctx, tc, employeeID)
}

func (f *fakeService) GetAll(ctx context.Context, tc tenant.Context, actorID string, canReadAll bool, from, to time.Time) ([]punch.PunchResponse, error) {
	return f.getAllFn(ctx, tc, actorID, canReadAll, from, to)
}

func (f *fakeService) Correct(ctx context.Context, tc tenant.Context, actorID string, canEditAll bool, id string, req punch.CorrectPunchRequest) (punch.PunchResponse, error) {
	return f.correctFn(ctx, tc, actorID, canEditAll, id, req)
}

func (f *fakeService) Delete(ctx context.Context, tc tenant.Context, id string) error {
	return f.deleteFn(ctx, tc, id)
}

func TestHandler_RecordAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakeService{
		punchFn: func(ctx context.Context, tc tenant.Context, eid string, kind punch.Kind, req punch.PunchRequest) (punch.PunchResponse, error) {
			assert.Equal(t, companyID, tc.CompanyID)
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, punch.KindCheckIn, kind)
			return punch.PunchResponse{ID: uuid.NewString(), EmployeeID: eid, Kind: string(kind)}, nil
		},
		getStatusFn: func(ctx context.Context, tc tenant.Context, eid string) (punch.StatusResponse, error) {
			return punch.StatusResponse{EmployeeID: eid, State: string(punch.StateWorking)}, nil
		},
	}

	h := punch.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/punches/check-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Record(punch.KindCheckIn)(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "CHECK_IN")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("company_id", companyID)
	c2.Set("employee_id", employeeID)
	c2.Request = httptest.NewRequest(http.MethodGet, "/punches/today", nil)
	h.GetStatus(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "WORKING")
}

func TestHandler_Record_SequencerConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		punchFn: func(ctx context.Context, tc tenant.Context, eid string, kind punch.Kind, req punch.PunchRequest) (punch.PunchResponse, error) {
			return punch.PunchResponse{}, puncherrors.ErrAlreadyCheckedIn
		},
	}
	h := punch.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodPost, "/punches/check-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Record(punch.KindCheckIn)(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_CHECKED_IN")
}

func TestHandler_GetAll_Pagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getAllFn: func(ctx context.Context, tc tenant.Context, actorID string, canReadAll bool, from, to time.Time) ([]punch.PunchResponse, error) {
			assert.False(t, canReadAll)
			return []punch.PunchResponse{{ID: uuid.NewString()}, {ID: uuid.NewString()}, {ID: uuid.NewString()}}, nil
		},
	}
	h := punch.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodGet, "/punches?page=1&page_size=2", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"meta\"")
	assert.Contains(t, w.Body.String(), "\"total\":3")
}

func TestHandler_GetAll_BadDateFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := punch.NewHandler(&fakeService{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodGet, "/punches?from=last-tuesday", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Correct(t *testing.T) {
	gin.SetMode(gin.TestMode)
	punchID := uuid.NewString()

	svc := &fakeService{
		correctFn: func(ctx context.Context, tc tenant.Context, actorID string, canEditAll bool, id string, req punch.CorrectPunchRequest) (punch.PunchResponse, error) {
			assert.Equal(t, punchID, id)
			assert.True(t, canEditAll)
			return punch.PunchResponse{ID: id}, nil
		},
	}
	h := punch.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())
	c.Set("has_read_all", true)
	c.Params = gin.Params{{Key: "id", Value: punchID}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/punches/"+punchID, strings.NewReader(`{"notes":"badge reader was down"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Correct(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
