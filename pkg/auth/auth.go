// Package auth supplies the current user to the bookmark service.
// There is no real authentication here: the user comes either from the
// request context or from static configuration.
package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrUnauthenticated is returned when no user is available.
var ErrUnauthenticated = errors.New("no authenticated user")

type contextKey string

const userKey contextKey = "user_id"

// WithUser returns a context carrying userID.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey).(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// ContextResolver resolves the user from the request context, falling
// back to Default when the context has none.
type ContextResolver struct {
	Default string
}

// CurrentUser implements bookmark.UserResolver.
func (r ContextResolver) CurrentUser(ctx context.Context) (string, error) {
	if id, ok := UserFromContext(ctx); ok {
		return id, nil
	}
	if strings.TrimSpace(r.Default) != "" {
		return r.Default, nil
	}
	return "", ErrUnauthenticated
}
