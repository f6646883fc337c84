package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dvoronin/membergate/internal/logger"
	"github.com/dvoronin/membergate/internal/model"
)

// sessionIDBytes is the length of random session ID material; 32 bytes
// encode to 64 hex characters.
const sessionIDBytes = 32

// SessionManager issues opaque session IDs and resolves them back to users.
// It composes the Bridge with a server-side SessionStore: the store maps
// session ID to the serialized identity payload, the Bridge maps payload to
// the current user record.
type SessionManager struct {
	bridge *Bridge
	store  model.SessionStore
	ttl    time.Duration
	logger *logger.Logger
}

// NewSessionManager creates a SessionManager. A non-positive ttl falls back
// to model.DefaultSessionTTL.
func NewSessionManager(bridge *Bridge, store model.SessionStore, ttl time.Duration, logger *logger.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = model.DefaultSessionTTL
	}
	return &SessionManager{
		bridge: bridge,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Issue creates a session for the user and returns the opaque session ID the
// transport hands to the client.
func (m *SessionManager) Issue(ctx context.Context, user model.User) (string, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	if err := m.store.Set(ctx, sessionID, m.bridge.Serialize(user), m.ttl); err != nil {
		m.logger.Error("Session manager: failed to persist session",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	m.logger.Info("Session manager: session issued",
		"user_id", user.ID)

	return sessionID, nil
}

// Resolve maps a session ID back to the current user record. An unknown or
// expired session ID, or a payload whose user is gone, yields
// model.ErrSessionInvalid.
func (m *SessionManager) Resolve(ctx context.Context, sessionID string) (model.User, error) {
	payload, err := m.store.Get(ctx, sessionID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrSessionInvalid
	}
	if err != nil {
		m.logger.Error("Session manager: failed to read session",
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to read session: %w", err)
	}

	return m.bridge.Resolve(ctx, payload)
}

// Drop deletes a session, transitioning the client back to anonymous.
// Dropping an unknown session is not an error.
func (m *SessionManager) Drop(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
