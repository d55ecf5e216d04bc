package punch

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind is the closed set of punch actions an employee can record.
type Kind string

const (
	KindCheckIn    Kind = "CHECK_IN"
	KindCheckOut   Kind = "CHECK_OUT"
	KindBreakStart Kind = "BREAK_START"
	KindBreakEnd   Kind = "BREAK_END"
	KindLunchStart Kind = "LUNCH_START"
	KindLunchEnd   Kind = "LUNCH_END"
)

func (k Kind) Valid() bool {
	switch k {
	case KindCheckIn, KindCheckOut, KindBreakStart, KindBreakEnd, KindLunchStart, KindLunchEnd:
		return true
	default:
		return false
	}
}

type PunchEvent struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index:idx_punch_employee_occurred"`
	Kind       Kind           `gorm:"column:kind;type:varchar(20);not null"`
	OccurredAt time.Time      `gorm:"column:occurred_at;type:timestamptz;not null;index:idx_punch_employee_occurred"`
	Notes      *string        `gorm:"column:notes;type:text"`
	Location   *string        `gorm:"column:location;type:varchar(255)"`
	Latitude   *float64       `gorm:"column:latitude"`
	Longitude  *float64       `gorm:"column:longitude"`
	DeviceInfo *string        `gorm:"column:device_info;type:varchar(255)"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Employee   *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (PunchEvent) TableName() string {
	return "punch_events"
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
