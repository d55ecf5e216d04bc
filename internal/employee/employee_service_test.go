package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"sphere-timecontrol/internal/employee"
	employeeerrors "sphere-timecontrol/internal/employee/errors"
	"sphere-timecontrol/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

var testCompanyID = uuid.New()

type fakeRepo struct {
	employees map[string]*employee.Employee
	err       error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{employees: make(map[string]*employee.Employee)}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, e *employee.Employee) error {
	if f.err != nil {
		return f.err
	}
	f.employees[e.ID.String()] = e
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID.String() == companyID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindActiveByCompany(ctx context.Context, companyID string, departmentIDs []string) ([]employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID.String() == companyID && e.EmploymentStatus == employee.StatusActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.employees[id]
	if !ok || e.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeRepo) Update(ctx context.Context, e *employee.Employee) error {
	f.employees[e.ID.String()] = e
	return f.err
}

func (f *fakeRepo) Delete(ctx context.Context, companyID string, id string) error {
	delete(f.employees, id)
	return f.err
}

type fakeCounter struct {
	next int64
	err  error
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

func testTenant() tenant.Context {
	return tenant.Context{CompanyID: testCompanyID.String(), Subdomain: "acme"}
}

func TestEmployeeService_Create_GeneratesNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeRepo()
	rdb, redisMock := redismock.NewClientMock()
	svc := employee.NewService(db, repo, &fakeCounter{}, rdb)

	mock.ExpectBegin()
	mock.ExpectCommit()
	redisMock.ExpectDel(employee.GetEmployeeOptionsKey(testCompanyID.String())).SetVal(1)

	resp, err := svc.Create(context.Background(), testTenant(), employee.CreateEmployeeRequest{
		FirstName: "Budi",
		LastName:  "Santoso",
		Email:     "budi@acme.example",
		HireDate:  "2026-01-05",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
	assert.Equal(t, employee.StatusActive, resp.EmploymentStatus)
	assert.Len(t, repo.employees, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_Create_InvalidInput(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := employee.NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	_, err = svc.Create(context.Background(), tenant.Context{CompanyID: "nope"}, employee.CreateEmployeeRequest{HireDate: "2026-01-05"})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidCompanyID)

	_, err = svc.Create(context.Background(), testTenant(), employee.CreateEmployeeRequest{HireDate: "05-01-2026"})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)

	_, err = svc.Create(context.Background(), testTenant(), employee.CreateEmployeeRequest{
		HireDate:     "2026-01-05",
		DepartmentID: "not-a-uuid",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidDepartmentID)
}

func TestEmployeeService_GetOptions_CacheMissFillsRedis(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeRepo()
	active := &employee.Employee{
		ID:               uuid.New(),
		CompanyID:        testCompanyID,
		FirstName:        "Siti",
		LastName:         "Rahma",
		EmploymentStatus: employee.StatusActive,
		HireDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.employees[active.ID.String()] = active

	rdb, redisMock := redismock.NewClientMock()
	svc := employee.NewService(db, repo, &fakeCounter{}, rdb)

	cacheKey := employee.GetEmployeeOptionsKey(testCompanyID.String())
	redisMock.ExpectGet(cacheKey).RedisNil()
	redisMock.Regexp().ExpectSet(cacheKey, `.*`, time.Hour).SetVal("OK")

	resp, err := svc.GetOptions(context.Background(), testTenant())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Siti", resp[0].FirstName)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_GetOptions_CacheHit(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cached := []employee.EmployeeResponse{{ID: uuid.NewString(), FirstName: "Cache", LastName: "Hit"}}
	payload, _ := json.Marshal(cached)

	rdb, redisMock := redismock.NewClientMock()
	svc := employee.NewService(db, newFakeRepo(), &fakeCounter{}, rdb)

	redisMock.ExpectGet(employee.GetEmployeeOptionsKey(testCompanyID.String())).SetVal(string(payload))

	resp, err := svc.GetOptions(context.Background(), testTenant())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Cache", resp[0].FirstName)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeRepo()
	existing := &employee.Employee{
		ID:               uuid.New(),
		CompanyID:        testCompanyID,
		FirstName:        "Budi",
		LastName:         "Santoso",
		Email:            "budi@acme.example",
		EmploymentStatus: employee.StatusActive,
	}
	repo.employees[existing.ID.String()] = existing

	svc := employee.NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Update(context.Background(), testTenant(), existing.ID.String(), employee.UpdateEmployeeRequest{
		FirstName:        "Budi",
		LastName:         "Santoso",
		Email:            "budi.s@acme.example",
		EmploymentStatus: employee.StatusInactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, "budi.s@acme.example", resp.Email)
	assert.Equal(t, employee.StatusInactive, resp.EmploymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := newFakeRepo()
	existing := &employee.Employee{ID: uuid.New(), CompanyID: testCompanyID}
	repo.employees[existing.ID.String()] = existing

	svc := employee.NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	assert.NoError(t, svc.Delete(context.Background(), testTenant(), existing.ID.String()))
	assert.Empty(t, repo.employees)
	assert.NoError(t, mock.ExpectationsWereMet())
}
