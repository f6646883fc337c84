package model

import (
	"context"
)

// ContextManager attaches the authenticated user to a request context and
// reads it back for downstream authorization checks.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user User) context.Context
	GetUserFromContext(ctx context.Context) (User, bool)
}
