package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"uniqueIndex:uq_employee_code"`
	FullName     string
	Email        string
	CostCenter   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
