package models

// AreaStatus represents the lifecycle state of a work area
type AreaStatus string

const (
	AreaStatusActive   AreaStatus = "active"
	AreaStatusInactive AreaStatus = "inactive"
)

// Area represents a geofenced work area: a WGS84 center point plus a
// radius in meters. Deactivation is a soft status change, areas with
// assigned employees are never removed physically.
type Area struct {
	BaseModel
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Latitude    float64    `gorm:"type:decimal(20,15);not null" json:"latitude"`
	Longitude   float64    `gorm:"type:decimal(20,15);not null" json:"longitude"`
	Radius      int        `gorm:"not null" json:"radius"` // meters, 10..10000
	Status      AreaStatus `gorm:"type:varchar(10);default:'active'" json:"status"`

	// Relations
	Schedule  *AreaSchedule `gorm:"foreignKey:AreaID" json:"schedule,omitempty"`
	Employees []Employee    `gorm:"foreignKey:AreaID" json:"employees,omitempty"`
}

// IsActive reports whether the area accepts attendance marks
func (a *Area) IsActive() bool {
	return a.Status == AreaStatusActive
}
