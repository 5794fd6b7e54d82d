package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"interview-coach/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Upsert(profile *models.Profile) error
	FindByUserID(userID string) (*models.Profile, error)
	UpdateResume(userID, resumeText, resumeFile string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert writes the editable profile fields. Resume fields are only
// overwritten when the incoming profile carries resume text.
func (r *profileRepository) Upsert(profile *models.Profile) error {
	profile.UpdatedAt = time.Now()

	columns := []string{"name", "job_role", "experience_level", "updated_at"}
	if profile.ResumeText != "" {
		columns = append(columns, "resume_text")
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(profile).Error

	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *profileRepository) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// UpdateResume creates the profile when the user has none yet.
func (r *profileRepository) UpdateResume(userID, resumeText, resumeFile string) error {
	profile := &models.Profile{
		UserID:     userID,
		ResumeText: resumeText,
		ResumeFile: resumeFile,
		UpdatedAt:  time.Now(),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"resume_text", "resume_file", "updated_at"}),
	}).Create(profile).Error

	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	return nil
}
