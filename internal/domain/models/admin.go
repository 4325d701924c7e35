package models

// Admin represents system administrators
type Admin struct {
	BaseModel
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Email    string `gorm:"type:varchar(100);unique" json:"email"`
	FullName string `gorm:"type:varchar(100)" json:"full_name"`
	Role     string `gorm:"type:varchar(50);default:'admin'" json:"role"`    // Role: admin
	Status   string `gorm:"type:varchar(20);default:'active'" json:"status"` // Status: active, inactive
}
