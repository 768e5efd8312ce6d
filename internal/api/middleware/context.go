package middleware

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor кладет участника запроса в контекст
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext участник запроса, установленный Auth или JWTAuth
func ActorFromContext(ctx context.Context) (*domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*domain.Actor)
	return actor, ok && actor != nil
}

// GetUserID ID пользователя запроса
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return 0, false
	}
	return actor.UserID, true
}
