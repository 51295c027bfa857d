package auth

import (
	"context"

	"libraryql/internal/model"
)

type ctxKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the current user. ok is false for anonymous requests -
// there is no third "unset" state.
func FromContext(ctx context.Context) (u model.User, ok bool) {
	u, ok = ctx.Value(ctxKey{}).(model.User)
	return u, ok
}
