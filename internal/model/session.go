package model

import (
	"context"
	"time"
)

// DefaultSessionTTL is how long a session lives without explicit logout.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore persists server-side session state keyed by opaque session ID.
// The payload is the serialized identity reference and never carries role
// flags or password material.
type SessionStore interface {
	Set(ctx context.Context, sessionID, payload string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
