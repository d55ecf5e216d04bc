package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "sphere-timecontrol/internal/employee/errors"
	"sphere-timecontrol/internal/shared/contextutil"
	"sphere-timecontrol/internal/shared/counter"
	"sphere-timecontrol/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tc tenant.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, tc tenant.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, tc tenant.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, tc tenant.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, tc tenant.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, tc tenant.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, tc tenant.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", tc.CompanyID),
		zap.String("email", req.Email),
	)

	companyUUID, err := uuid.Parse(tc.CompanyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	var departmentID *uuid.UUID
	if req.DepartmentID != "" {
		deptUUID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
		}
		departmentID = &deptUUID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, tc.CompanyID, "employee_number")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		DepartmentID:     departmentID,
		EmployeeNumber:   req.EmployeeNumber,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		HireDate:         hireDate,
		EmploymentStatus: StatusActive,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, tc.CompanyID)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, tc tenant.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, tc.CompanyID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetOptions(ctx context.Context, tc tenant.Context) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(tc.CompanyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// singleflight collapses concurrent cache fills per company
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindActiveByCompany(ctx, tc.CompanyID, nil)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, tc tenant.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByIDAndCompany(ctx, tc.CompanyID, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, tc tenant.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("company_id", tc.CompanyID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndCompany(ctx, tc.CompanyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FirstName = req.FirstName
	empl.LastName = req.LastName
	empl.Email = req.Email
	empl.Phone = req.Phone
	if req.DepartmentID != "" {
		deptUUID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
		}
		empl.DepartmentID = &deptUUID
	}
	if req.EmploymentStatus != "" {
		empl.EmploymentStatus = req.EmploymentStatus
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, tc.CompanyID)
	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, tc tenant.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, tc.CompanyID, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx, tc.CompanyID)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID.String(),
		CompanyID:        e.CompanyID.String(),
		EmployeeNumber:   e.EmployeeNumber,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		Phone:            e.Phone,
		HireDate:         e.HireDate.Format("2006-01-02"),
		EmploymentStatus: e.EmploymentStatus,
	}
	if e.DepartmentID != nil {
		resp.DepartmentID = e.DepartmentID.String()
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp
}
