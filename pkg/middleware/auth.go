package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/services"
	"repair-system/pkg/contextkeys"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/service"
	"repair-system/pkg/utils"
)

type AuthMiddleware struct {
	jwtService   service.JWTService
	profileCache services.ProfileCacheServiceInterface
	logger       *zap.Logger
}

func NewAuthMiddleware(
	jwtSvc service.JWTService,
	profileCache services.ProfileCacheServiceInterface,
	logger *zap.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtSvc,
		profileCache: profileCache,
		logger:       logger,
	}
}

// Auth validates the bearer token and hydrates the request context with the
// actor's user ID and profile role. A missing profile is not a rejection:
// such actors proceed and are limited to their own records downstream.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, err)
		}

		// Refresh tokens are only accepted by the refresh endpoint.
		if claims.IsRefreshToken {
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.UserIDKey, claims.UserID)

		role, hasProfile, err := m.profileCache.GetRole(ctx, claims.UserID)
		if err != nil {
			// Role resolution failure degrades to the most restrictive
			// scope instead of failing the request.
			m.logger.Warn("role lookup failed",
				zap.Uint64("userID", claims.UserID), zap.Error(err))
		} else if hasProfile {
			ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
