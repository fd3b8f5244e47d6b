package model

import (
	"time"

	"gorm.io/gorm"
)

// Internship represents a posting owned by a firm
type Internship struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	FirmID           uint           `json:"firm_id" gorm:"index;not null"`
	Title            string         `json:"title" gorm:"type:varchar(255)"`
	Description      string         `json:"description" gorm:"type:text"`
	Location         string         `json:"location" gorm:"type:varchar(255)"`
	CompanyName      string         `json:"company_name" gorm:"type:varchar(255)"`
	Responsibilities string         `json:"responsibilities" gorm:"type:text"`
	Requirements     string         `json:"requirements" gorm:"type:text"`
	Stipend          int64          `json:"stipend" gorm:"not null"`
	Duration         string         `json:"duration" gorm:"type:varchar(100);default:'6 months'"`
	Deadline         time.Time      `json:"deadline" gorm:"type:date"`
	Perks            string         `json:"perks" gorm:"type:varchar(255)"`
	Mode             string         `json:"mode" gorm:"type:varchar(100)"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Firm Firm `json:"firm,omitempty" gorm:"foreignKey:FirmID"`
}
