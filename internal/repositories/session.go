package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"interview-coach/internal/models"
)

const MaxSessionsPerPage = 50

type SessionRepository interface {
	Create(session *models.Session) error
	ListByUser(userID string, limit int) ([]models.Session, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// ListByUser returns the user's sessions, newest first.
func (r *sessionRepository) ListByUser(userID string, limit int) ([]models.Session, error) {
	if limit <= 0 || limit > MaxSessionsPerPage {
		limit = MaxSessionsPerPage
	}

	sessions := make([]models.Session, 0)
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}
