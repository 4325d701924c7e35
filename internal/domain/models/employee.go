package models

import "time"

// EmployeeStatus represents whether an employee is active
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee is a worker assigned to a geofenced area
type Employee struct {
	BaseModel
	EmployeeNumber int    `gorm:"uniqueIndex;not null" json:"employee_number"` // sequential, assigned on creation
	FirstName      string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email          string `gorm:"type:varchar(100);index" json:"email"`
	// Uniqueness is enforced among active employees only, so no
	// database-level unique index here
	Cedula   string         `gorm:"type:varchar(10);index;not null" json:"cedula"`
	Position string         `gorm:"type:varchar(100)" json:"position"`
	AreaID   *uint          `gorm:"index" json:"area_id"` // nullable during creation
	HireDate time.Time      `json:"hire_date"`
	Status   EmployeeStatus `gorm:"type:varchar(10);default:'active'" json:"status"`

	// Relations
	Area        *Area        `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	FaceProfile *FaceProfile `gorm:"foreignKey:EmployeeID" json:"face_profile,omitempty"`
}

// FullName returns the display name of the employee
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
