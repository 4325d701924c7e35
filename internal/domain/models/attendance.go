package models

import "time"

// AttendanceAction is the clock action performed by a mark request
type AttendanceAction string

const (
	ActionClockIn  AttendanceAction = "clock_in"
	ActionClockOut AttendanceAction = "clock_out"
)

// AttendanceStatus classifies the day record
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
)

// Attendance is the per-employee per-day attendance record. The row is
// created by the day's clock-in and completed by the clock-out; the
// unique (employee_id, date) index is what makes concurrent marks for
// the same employee safe.
type Attendance struct {
	BaseModel
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_employee_date" json:"employee_id"`
	AreaID     uint      `gorm:"not null;index" json:"area_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_employee_date" json:"date"`

	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`

	Status AttendanceStatus `gorm:"type:varchar(10);default:'present'" json:"status"`

	Latitude  float64 `gorm:"type:decimal(9,6)" json:"latitude"`
	Longitude float64 `gorm:"type:decimal(9,6)" json:"longitude"`

	FaceVerified   bool    `gorm:"default:false" json:"face_verified"`
	Confidence     float64 `json:"confidence"`
	DistanceMeters float64 `json:"distance_meters"`
	WithinSchedule bool    `json:"within_schedule"`
	MinutesLate    int     `json:"minutes_late"`

	// Relations
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Area     *Area     `gorm:"foreignKey:AreaID" json:"area,omitempty"`
}

// IsComplete reports whether both clock-in and clock-out were recorded
func (a *Attendance) IsComplete() bool {
	return a.CheckIn != nil && a.CheckOut != nil
}

// HoursWorked returns the worked hours for a completed day, or 0
func (a *Attendance) HoursWorked() float64 {
	if !a.IsComplete() {
		return 0
	}
	return a.CheckOut.Sub(*a.CheckIn).Hours()
}
