package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/internal/repositories"
	"licensing-system/pkg/constants"
)

// IdentityService resolves token subjects to actors, caching the result in redis.
type IdentityService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	ttl       time.Duration
	logger    *zap.Logger
}

func NewIdentityService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) *IdentityService {
	return &IdentityService{userRepo: userRepo, cacheRepo: cacheRepo, ttl: ttl, logger: logger}
}

func (s *IdentityService) ResolveActor(ctx context.Context, userID uuid.UUID) (authz.Actor, error) {
	key := fmt.Sprintf(constants.CacheKeyIdentity, userID)

	cached, err := s.cacheRepo.Get(ctx, key)
	if err == nil {
		var actor authz.Actor
		if jsonErr := json.Unmarshal([]byte(cached), &actor); jsonErr == nil {
			return actor, nil
		}
		s.logger.Warn("IdentityService: dropping unreadable cache entry", zap.String("key", key))
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("IdentityService: cache unavailable, falling back to database", zap.Error(err))
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return authz.Actor{}, err
	}

	actor := authz.Actor{
		ID:         user.ID,
		Name:       user.Name,
		Role:       user.Role,
		ProvinceID: user.ProvinceID,
		IsActive:   user.IsActive,
	}

	if payload, err := json.Marshal(actor); err == nil {
		if err := s.cacheRepo.Set(ctx, key, payload, s.ttl); err != nil {
			s.logger.Warn("IdentityService: failed to cache actor", zap.Error(err))
		}
	}
	return actor, nil
}

// Invalidate must be called whenever a user's role, province or active flag changes.
func (s *IdentityService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cacheRepo.Del(ctx, fmt.Sprintf(constants.CacheKeyIdentity, userID)); err != nil {
		s.logger.Warn("IdentityService: failed to invalidate actor", zap.String("userID", userID.String()), zap.Error(err))
	}
}
