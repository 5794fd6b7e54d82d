package models

import "time"

type Profile struct {
	UserID          string    `gorm:"type:text;primary_key" json:"userId"`
	Name            string    `gorm:"type:text" json:"name"`
	JobRole         string    `gorm:"type:text" json:"jobRole"`
	ExperienceLevel string    `gorm:"type:text" json:"experienceLevel"`
	ResumeText      string    `gorm:"type:text" json:"resumeText"`
	ResumeFile      string    `gorm:"type:text" json:"resumeFile,omitempty"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}
