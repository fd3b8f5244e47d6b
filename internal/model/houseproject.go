package model

import (
	"time"
)

// ProjectStatus is the lifecycle state of a house project
type ProjectStatus string

const (
	ProjectPending  ProjectStatus = "pending"
	ProjectApproved ProjectStatus = "approved"
	ProjectRejected ProjectStatus = "rejected"
)

// HouseProject is a client's construction project request. FirmID stays nil
// while the project is pending; approval assigns the firm exactly once via a
// conditional update guarded on the pending status.
type HouseProject struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	ClientID        uint          `json:"client_id" gorm:"index;not null"`
	FirmID          *uint         `json:"firm_id,omitempty" gorm:"index"`
	Status          ProjectStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	ApprovalMessage string        `json:"approval_message" gorm:"type:text"`
	FirmResponse    string        `json:"firm_response" gorm:"type:text"`
	ProjectName     string        `json:"project_name" gorm:"type:varchar(255)"`
	Description     string        `json:"description" gorm:"type:text"`
	Location        string        `json:"location" gorm:"type:varchar(255)"`
	AreaSqft        int           `json:"area_sqft"`
	Budget          int64         `json:"budget"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Relations
	Client User  `json:"-" gorm:"foreignKey:ClientID"`
	Firm   *Firm `json:"firm,omitempty" gorm:"foreignKey:FirmID"`
}
