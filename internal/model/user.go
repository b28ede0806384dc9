package model

import "time"

// Role is an enumerated actor category gating which operations a user may invoke.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleAnalyst     Role = "analyst"
	RoleFieldAgent  Role = "field_agent"
	RolePartner     Role = "partner"
	RoleBeneficiary Role = "beneficiary"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAnalyst, RoleFieldAgent, RolePartner, RoleBeneficiary:
		return true
	}
	return false
}

// User represents an authenticated user in the system.
type User struct {
	ID           uint       `json:"user_id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;index"`
	FullName     string     `json:"full_name,omitempty" gorm:"size:100"`
	Email        string     `json:"email,omitempty" gorm:"uniqueIndex;size:100"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	IsPredefined bool       `json:"is_predefined" gorm:"default:false;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Actor is the identity performing a workflow operation. It is threaded
// explicitly through every service call; there is no ambient current user.
type Actor struct {
	ID       uint
	FullName string
	Role     Role
}
