package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

type UserServiceInterface interface {
	MyProfile(ctx context.Context) (*dto.ProfileDTO, error)
	UpdateMyProfile(ctx context.Context, payload dto.UpdateProfileDTO) (*dto.ProfileDTO, error)
	ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error)
}

type UserService struct {
	userRepo     repositories.UserRepositoryInterface
	profileCache ProfileCacheServiceInterface
	logger       *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	profileCache ProfileCacheServiceInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:     userRepo,
		profileCache: profileCache,
		logger:       logger,
	}
}

func (s *UserService) MyProfile(ctx context.Context) (*dto.ProfileDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileDTO{
		ID: profile.ID,
		User: dto.ShortUserDTO{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName(),
		},
		Role:       string(profile.Role),
		Department: profile.Department,
		Phone:      profile.Phone,
		CreatedAt:  profile.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *UserService) UpdateMyProfile(ctx context.Context, payload dto.UpdateProfileDTO) (*dto.ProfileDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfile(ctx, actorID, payload.Department, payload.Phone); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}

	if err := s.profileCache.Invalidate(ctx, actorID); err != nil {
		s.logger.Warn("failed to invalidate profile cache", zap.Uint64("userID", actorID), zap.Error(err))
	}

	return s.MyProfile(ctx)
}

func (s *UserService) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	return s.userRepo.ListTechnicians(ctx)
}
