// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"posadmin/internal/core/id"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID   id.ID
	Email    string
	Role     string
	BranchID *id.ID
	IsActive bool
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns the acting user's ID, or nil when the request is
// unauthenticated (system/anonymous operations).
func GetUserID(ctx context.Context) *id.ID {
	if u := GetUser(ctx); u != nil && !id.IsNil(u.UserID) {
		uid := u.UserID
		return &uid
	}
	return nil
}

// HasRole checks if the user has the given role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}
