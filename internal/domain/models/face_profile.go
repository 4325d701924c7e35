package models

import "time"

// FaceProfileStatus represents the training state of a face profile
type FaceProfileStatus string

const (
	FaceProfilePending  FaceProfileStatus = "pending"
	FaceProfileCaptured FaceProfileStatus = "captured"
	FaceProfileTrained  FaceProfileStatus = "trained"
	FaceProfileError    FaceProfileStatus = "error"
)

// DefaultConfidenceThreshold is the minimum face-match score required
// to authorize an attendance event.
const DefaultConfidenceThreshold = 0.90

// FaceProfile holds the facial recognition state of an employee
type FaceProfile struct {
	BaseModel
	EmployeeID          uint              `gorm:"uniqueIndex;not null" json:"employee_id"`
	Status              FaceProfileStatus `gorm:"type:varchar(10);default:'pending'" json:"status"`
	PhotosCount         int               `gorm:"default:0" json:"photos_count"`
	ConfidenceThreshold float64           `gorm:"default:0.90" json:"confidence_threshold"`
	LastTraining        *time.Time        `json:"last_training"`
}

// Threshold returns the profile threshold, falling back to the policy default
func (p *FaceProfile) Threshold() float64 {
	if p == nil || p.ConfidenceThreshold <= 0 {
		return DefaultConfidenceThreshold
	}
	return p.ConfidenceThreshold
}
