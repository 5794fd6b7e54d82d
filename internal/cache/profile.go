package cache

import (
	"context"
	"time"

	"interview-coach/internal/models"
)

const profileKeyPrefix = "profile:"

type ProfileCache interface {
	Get(ctx context.Context, userID string) (*models.Profile, bool, error)
	Set(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, userID string) error
}

type profileCache struct {
	redis *Redis
	ttl   time.Duration
}

func NewProfileCache(r *Redis, ttl time.Duration) ProfileCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &profileCache{redis: r, ttl: ttl}
}

func profileKey(userID string) string {
	return profileKeyPrefix + userID
}

func (p *profileCache) Get(ctx context.Context, userID string) (*models.Profile, bool, error) {
	var profile models.Profile
	found, err := p.redis.GetJSON(ctx, profileKey(userID), &profile)
	if err != nil || !found {
		return nil, false, err
	}
	return &profile, true, nil
}

func (p *profileCache) Set(ctx context.Context, profile *models.Profile) error {
	return p.redis.SetJSON(ctx, profileKey(profile.UserID), profile, p.ttl)
}

func (p *profileCache) Delete(ctx context.Context, userID string) error {
	return p.redis.Delete(ctx, profileKey(userID))
}
