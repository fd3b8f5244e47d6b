package model

import (
	"time"
)

// Firm represents a firm's public identity, owned by exactly one user
type Firm struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255)"`
	Description string    `json:"description" gorm:"type:text"`
	Website     string    `json:"website" gorm:"type:varchar(255)"`
	Location    string    `json:"location" gorm:"type:varchar(100)"`
	LogoKey     string    `json:"logo_key" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
