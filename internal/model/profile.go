package model

import (
	"time"
)

// Role is the per-user role assignment. Firm and client roles require a
// matching Firm/Client row, created in the same transaction as the user.
type Role string

const (
	RoleStudent Role = "student"
	RoleFirm    Role = "firm"
	RoleClient  Role = "client"
)

// Valid reports whether r is one of the three known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFirm, RoleClient:
		return true
	}
	return false
}

// Profile represents the role assignment for a user
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Role      Role      `json:"role" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
