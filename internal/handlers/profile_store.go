package handlers

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"interview-coach/internal/cache"
	"interview-coach/internal/models"
	"interview-coach/internal/repositories"
)

// ProfileStore reads profiles through the cache and keeps it coherent on
// writes. Cache errors are logged and never fail a request.
type ProfileStore struct {
	repo   repositories.ProfileRepository
	cache  cache.ProfileCache
	logger *zap.Logger
}

func NewProfileStore(repo repositories.ProfileRepository, profileCache cache.ProfileCache, logger *zap.Logger) *ProfileStore {
	return &ProfileStore{repo: repo, cache: profileCache, logger: logger}
}

// Load returns (nil, nil) when the user has no profile.
func (s *ProfileStore) Load(ctx context.Context, userID string) (*models.Profile, error) {
	profile, found, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("profile cache read failed", zap.String("user_id", userID), zap.Error(err))
	}
	if found {
		return profile, nil
	}

	profile, err = s.repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, profile); err != nil {
		s.logger.Warn("profile cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return profile, nil
}

func (s *ProfileStore) Save(ctx context.Context, profile *models.Profile) error {
	if err := s.repo.Upsert(profile); err != nil {
		return err
	}
	s.invalidate(ctx, profile.UserID)
	return nil
}

func (s *ProfileStore) SaveResume(ctx context.Context, userID, resumeText, resumeFile string) error {
	if err := s.repo.UpdateResume(userID, resumeText, resumeFile); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *ProfileStore) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn("profile cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
