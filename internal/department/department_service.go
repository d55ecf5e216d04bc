package department

import (
	"context"
	"database/sql"
	"errors"

	departmenterrors "sphere-timecontrol/internal/department/errors"
	"sphere-timecontrol/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tc tenant.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, tc tenant.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, tc tenant.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, tc tenant.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, tc tenant.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, tc tenant.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	companyUUID, err := uuid.Parse(tc.CompanyID)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("create department success",
		zap.String("department_id", dept.ID.String()),
		zap.String("company_id", tc.CompanyID),
	)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, tc tenant.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAllByCompany(ctx, tc.CompanyID)
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, tc tenant.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByIDAndCompany(ctx, tc.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		s.logger.Error("get department by id failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, tc tenant.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndCompany(ctx, tc.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	dept.Name = req.Name
	dept.Description = req.Description

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.logger.Info("update department success", zap.String("department_id", id))
	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, tc tenant.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, tc.CompanyID, id); err != nil {
		s.logger.Error("delete department failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID.String(),
		CompanyID:   dept.CompanyID.String(),
		Name:        dept.Name,
		Description: dept.Description,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
