package summary

import (
	"context"

	"sphere-timecontrol/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=summary_repo.go -destination=mock/summary_repo_mock.go -package=mock
type Repository interface {
	Upsert(ctx context.Context, s *DailySummary) error
	FindByEmployeeAndRange(ctx context.Context, companyID, employeeID, from, to string) ([]DailySummary, error)
	FindByCompanyAndRange(ctx context.Context, companyID, from, to string) ([]DailySummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert replaces the derived columns; (employee_id, date) is the natural key.
func (r *repository) Upsert(ctx context.Context, s *DailySummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "worked_minutes", "break_minutes", "overtime_minutes",
				"is_late", "is_early_leave", "first_check_in", "last_check_out",
				"updated_at",
			}),
		}).
		Create(s).Error
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID, from, to string) ([]DailySummary, error) {
	var rows []DailySummary
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByCompanyAndRange(ctx context.Context, companyID, from, to string) ([]DailySummary, error) {
	var rows []DailySummary
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("date BETWEEN ? AND ?", from, to).
		Order("employee_id ASC, date ASC").
		Find(&rows).Error
	return rows, err
}
