package context

import (
	"context"

	"github.com/dvoronin/membergate/internal/model"
)

type contextKey string

// userKey is the context key under which the authenticated user is stored.
const userKey contextKey = "user"

// Manager attaches the authenticated user to the request context so
// downstream handlers can read the role flags without another store query.
type Manager struct{}

// NewManager creates a new context Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a context carrying the authenticated user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user and whether one is set.
// Anonymous requests carry no user.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
