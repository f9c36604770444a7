package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
)

type ProfileCacheServiceInterface interface {
	// GetRole resolves the actor's role. ok is false when the actor has no
	// profile record; callers then fall back to the most restrictive scope.
	GetRole(ctx context.Context, userID uint64) (role entities.Role, ok bool, err error)
	Invalidate(ctx context.Context, userID uint64) error
}

// ProfileCacheService caches profile roles in Redis so the auth middleware
// does not hit Postgres on every request.
type ProfileCacheService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	ttl       time.Duration
}

func NewProfileCacheService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	ttl time.Duration,
) ProfileCacheServiceInterface {
	return &ProfileCacheService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		ttl:       ttl,
	}
}

// noProfileMarker is cached for users without a profile so their absence does
// not cause a database lookup on every request either.
const noProfileMarker = "__none__"

func profileRoleKey(userID uint64) string {
	return fmt.Sprintf("profile_role:%d", userID)
}

func (s *ProfileCacheService) GetRole(ctx context.Context, userID uint64) (entities.Role, bool, error) {
	key := profileRoleKey(userID)

	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		if cached == noProfileMarker {
			return "", false, nil
		}
		role := entities.Role(cached)
		if role.Valid() {
			return role, true, nil
		}
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if cacheErr := s.cacheRepo.Set(ctx, key, noProfileMarker, s.ttl); cacheErr != nil {
				s.logger.Warn("failed to cache missing profile", zap.Uint64("userID", userID), zap.Error(cacheErr))
			}
			return "", false, nil
		}
		return "", false, err
	}

	if err := s.cacheRepo.Set(ctx, key, string(profile.Role), s.ttl); err != nil {
		s.logger.Warn("failed to cache profile role", zap.Uint64("userID", userID), zap.Error(err))
	}
	return profile.Role, true, nil
}

func (s *ProfileCacheService) Invalidate(ctx context.Context, userID uint64) error {
	return s.cacheRepo.Del(ctx, profileRoleKey(userID))
}
