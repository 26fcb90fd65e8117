package api

import (
	"context"

	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
)

type ctxKey string

const (
	userKey      ctxKey = "user"
	requestIDKey ctxKey = "request_id"
)

// withUser returns a copy of ctx carrying the authenticated user.
func withUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// userFromContext returns the authenticated user, or nil before the gate ran.
func userFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
