package authctx

import (
	"context"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

type contextKey string

const userContextKey contextKey = "currentUser"

type CurrentUser struct {
	ID    int64
	Email string
	Role  domain.UserRole
}

// Principal converts to the identity shape the engines consume.
func (u CurrentUser) Principal() domain.Principal {
	return domain.Principal{ID: u.ID, Role: u.Role}
}

func WithCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func FromContext(ctx context.Context) *CurrentUser {
	val, ok := ctx.Value(userContextKey).(CurrentUser)
	if !ok {
		return nil
	}
	return &val
}
