package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/service"
	"repair-system/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	txm      repositories.TxManagerInterface
	userRepo repositories.UserRepositoryInterface
	jwtSvc   service.JWTService
	logger   *zap.Logger
}

func NewAuthService(
	txm repositories.TxManagerInterface,
	userRepo repositories.UserRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		txm:      txm,
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		logger:   logger,
	}
}

// Register creates the account and its profile in one transaction, so every
// registered identity carries a role from the start.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	role := entities.Role(payload.Role)
	if payload.Role == "" {
		role = entities.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role %q", payload.Role)
	}

	user := &entities.User{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: hash,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
	}
	profile := &entities.UserProfile{
		Role:       role,
		Department: payload.Department,
		Phone:      payload.Phone,
	}

	var userID uint64
	err = s.txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.userRepo.CreateWithProfileInTx(ctx, tx, user, profile)
		if err != nil {
			if repositories.IsUniqueViolation(err) {
				return apperrors.NewValidationError("username %q is already taken", payload.Username)
			}
			return err
		}
		userID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	user.ID = userID

	s.logger.Info("user registered", zap.Uint64("userID", userID), zap.String("role", string(role)))
	return s.buildAuthResponse(user)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// The user must still exist; tokens outlive account deletion otherwise.
	if _, err := s.userRepo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) buildAuthResponse(user *entities.User) (*dto.AuthResponseDTO, error) {
	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponseDTO{
		User: dto.ShortUserDTO{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName(),
		},
		Tokens: dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh},
	}, nil
}
