package punch

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sphere-timecontrol/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=punch_repo.go -destination=mock/punch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PunchEvent) error
	FindLatestByEmployee(ctx context.Context, companyID, employeeID string) (*PunchEvent, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*PunchEvent, error)
	FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]PunchEvent, error)
	FindByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) ([]PunchEvent, error)
	Update(ctx context.Context, p *PunchEvent) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, p *PunchEvent) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindLatestByEmployee(ctx context.Context, companyID, employeeID string) (*PunchEvent, error) {
	var p PunchEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("occurred_at DESC, created_at DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PunchEvent, error) {
	var p PunchEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]PunchEvent, error) {
	var rows []PunchEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Order("occurred_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time, employeeIDs []string) ([]PunchEvent, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("occurred_at >= ? AND occurred_at < ?", from, to)
	if len(employeeIDs) > 0 {
		q = q.Where("employee_id IN ?", employeeIDs)
	}

	var rows []PunchEvent
	err := q.
		Preload("Employee").
		Order("employee_id ASC, occurred_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, p *PunchEvent) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&PunchEvent{}).Error
}
