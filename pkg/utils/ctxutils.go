package utils

import (
	"context"

	"github.com/google/uuid"

	"licensing-system/internal/authz"
	"licensing-system/pkg/contextkeys"
	apperrors "licensing-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetActorFromCtx(ctx context.Context) (authz.Actor, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(authz.Actor)
	if !ok {
		return authz.Actor{}, apperrors.ErrActorNotFoundInContext
	}
	return actor, nil
}

func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, actor.ID)
	return context.WithValue(ctx, contextkeys.ActorKey, actor)
}
