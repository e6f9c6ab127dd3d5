// Package auth is the HTTP side of sessions: the session cookie, the
// middleware that resolves it to a user, and the sign-in endpoints.
package auth

import (
	"context"

	"newsroom/internal/domain/entity"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying the signed-in user.
func WithUser(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the signed-in user or nil.
func UserFromContext(ctx context.Context) *entity.User {
	u, _ := ctx.Value(ctxKey{}).(*entity.User)
	return u
}
