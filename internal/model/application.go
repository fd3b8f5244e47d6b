package model

import (
	"time"
)

// Application is a student's submission to an internship. Rows are immutable
// once created; there is no edit or withdraw path.
type Application struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	InternshipID  uint      `json:"internship_id" gorm:"index;not null"`
	StudentID     uint      `json:"student_id" gorm:"index;not null"`
	FirstName     string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName      string    `json:"last_name" gorm:"type:varchar(100)"`
	Email         string    `json:"email" gorm:"type:varchar(100)"`
	PhoneNumber   string    `json:"phone_number" gorm:"type:varchar(15)"`
	CollegeName   string    `json:"college_name" gorm:"type:varchar(255)"`
	YearOfPassing int       `json:"year_of_passing"`
	CGPA          float64   `json:"cgpa"`
	Achievements  string    `json:"achievements" gorm:"type:text"`
	ResumeKey     string    `json:"resume_key" gorm:"type:varchar(255)"`
	AppliedAt     time.Time `json:"applied_at" gorm:"autoCreateTime"`

	// Relations
	Internship Internship `json:"internship,omitempty" gorm:"foreignKey:InternshipID"`
	Student    User       `json:"-" gorm:"foreignKey:StudentID"`
}
