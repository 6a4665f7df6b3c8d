// pkg/utils/ctxutils.go

package utils

import (
	"context"

	"asset-tracker/pkg/contextkeys"
	apperrors "asset-tracker/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUsernameFromCtx(ctx context.Context) string {
	username, _ := ctx.Value(contextkeys.UsernameKey).(string)
	return username
}

func GetUserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	return role
}

func GetRequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	return id
}
