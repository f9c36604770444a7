package utils

import (
	"context"

	"repair-system/internal/entities"
	"repair-system/pkg/contextkeys"
	apperrors "repair-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

// GetRoleFromCtx returns the actor's role as hydrated by the auth middleware.
// A missing role is not an error: actors without a profile record fall back
// to the most restrictive scope downstream.
func GetRoleFromCtx(ctx context.Context) (entities.Role, bool) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(entities.Role)
	if !ok || !role.Valid() {
		return "", false
	}
	return role, true
}
