package summary

import (
	"time"

	"github.com/google/uuid"
)

// DailySummary is a denormalized read model projected from punch events by
// the kafka consumer. Raw events stay the source of truth; rows here can be
// rebuilt at any time.
type DailySummary struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_summary_employee_date"`
	Date       string    `gorm:"column:date;type:date;not null;uniqueIndex:uq_summary_employee_date"`

	Status          string `gorm:"column:status;type:varchar(20);not null"`
	WorkedMinutes   int    `gorm:"column:worked_minutes;not null;default:0"`
	BreakMinutes    int    `gorm:"column:break_minutes;not null;default:0"`
	OvertimeMinutes int    `gorm:"column:overtime_minutes;not null;default:0"`
	IsLate          bool   `gorm:"column:is_late;not null;default:false"`
	IsEarlyLeave    bool   `gorm:"column:is_early_leave;not null;default:false"`

	FirstCheckIn *time.Time `gorm:"column:first_check_in;type:timestamptz"`
	LastCheckOut *time.Time `gorm:"column:last_check_out;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (DailySummary) TableName() string {
	return "daily_attendance_summaries"
}
