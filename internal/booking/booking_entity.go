package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is persisted as a stable string token. Only StatusCreated
// is reachable today; the open type leaves room for CONFIRMED/CANCELLED
// without breaking stored rows.
type BookingStatus string

const (
	StatusCreated BookingStatus = "CREATED"
)

type ResourceType string

const (
	ResourceFlight ResourceType = "FLIGHT"
	ResourceHotel  ResourceType = "HOTEL"
	ResourceCar    ResourceType = "CAR"
	ResourceOther  ResourceType = "OTHER"
)

// NormalizeResourceType maps free-form input onto the canonical upper-case
// token. Unknown values pass through normalized; the enumeration is open.
func NormalizeResourceType(v string) ResourceType {
	return ResourceType(strings.ToUpper(strings.TrimSpace(v)))
}

type Booking struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID    `gorm:"type:uuid;index"`
	Employee      *EmployeeRef `gorm:"foreignKey:EmployeeID"`
	ResourceType  ResourceType
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	TravelerCount int
	CostCenterRef string
	TripPurpose   string
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmployeeRef is the read-only slice of the employees table this module
// needs for projection. The employee module stays canonical for writes.
type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FullName     string
}

func (EmployeeRef) TableName() string {
	return "employees"
}
