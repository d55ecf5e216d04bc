package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	DepartmentID     *uuid.UUID     `gorm:"type:uuid;index"`
	EmployeeNumber   string         `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FirstName        string         `gorm:"type:varchar(100);not null"`
	LastName         string         `gorm:"type:varchar(100);not null"`
	Email            string         `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	Phone            *string        `gorm:"type:varchar(30)"`
	HireDate         time.Time      `gorm:"type:date"`
	EmploymentStatus string         `gorm:"type:varchar(20);not null;default:ACTIVE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
