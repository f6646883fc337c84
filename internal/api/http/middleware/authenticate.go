package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/dvoronin/membergate/internal/logger"
	"github.com/dvoronin/membergate/internal/model"
)

// SessionResolver maps an opaque session ID to the current user record.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (model.User, error)
}

// Authenticate restores the authenticated user from the session cookie and
// injects it into the request context. A missing cookie, an invalid session
// or a deleted user all degrade the request to anonymous instead of failing;
// access control happens in the Require* guards.
type Authenticate struct {
	sessions       SessionResolver
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionResolver, contextManager model.ContextManager, cookieName string, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		sessions:       sessions,
		contextManager: contextManager,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Handle resolves the session cookie, if any, and attaches the user.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.sessions.Resolve(r.Context(), cookie.Value)
		if errors.Is(err, model.ErrSessionInvalid) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			// Store fault, not a dead session. The request still proceeds
			// anonymously, but the fault is worth logging loudly.
			m.logger.Error("Authenticate middleware: failed to resolve session",
				"error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects anonymous requests with 401.
func (m *Authenticate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.contextManager.GetUserFromContext(r.Context()); !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireMember rejects requests whose user lacks the member flag.
func (m *Authenticate) RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.contextManager.GetUserFromContext(r.Context())
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !user.Member {
			http.Error(w, "membership required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose user lacks the admin flag.
func (m *Authenticate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.contextManager.GetUserFromContext(r.Context())
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !user.Admin {
			http.Error(w, "admin required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
