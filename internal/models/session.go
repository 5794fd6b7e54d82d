package models

import (
	"time"

	"github.com/google/uuid"

	"interview-coach/internal/services"
)

// Session is one practiced question with the user's answer and its feedback.
type Session struct {
	ID               uuid.UUID                `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           string                   `gorm:"type:text;not null;index" json:"userId"`
	ModuleType       string                   `gorm:"type:text;not null" json:"moduleType"`
	Question         string                   `gorm:"type:text;not null" json:"question"`
	AnswerTranscript string                   `gorm:"type:text" json:"answerTranscript"`
	Feedback         *services.FeedbackResult `gorm:"type:jsonb;serializer:json" json:"feedback,omitempty"`
	OverallScore     int                      `gorm:"not null;default:0" json:"overallScore"`
	CreatedAt        time.Time                `gorm:"default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

func (Session) TableName() string {
	return "sessions"
}
