package employee

import (
	"context"
	"database/sql"

	"sphere-timecontrol/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindActiveByCompany(ctx context.Context, companyID string, departmentIDs []string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("last_name ASC, first_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string, departmentIDs []string) ([]Employee, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employment_status = ?", StatusActive)
	if len(departmentIDs) > 0 {
		q = q.Where("department_id IN ?", departmentIDs)
	}

	var rows []Employee
	err := q.
		Order("last_name ASC, first_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id).Error
}
