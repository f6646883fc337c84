package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dvoronin/membergate/internal/logger"
	"github.com/dvoronin/membergate/internal/model"
)

// Bridge translates between a user identity and its session payload.
// Serialize emits a pure reference (the user ID); Resolve re-reads the
// store, so role changes apply on the very next request without re-login.
type Bridge struct {
	userStore model.UserStore
	logger    *logger.Logger
}

// NewBridge creates a new Bridge.
func NewBridge(userStore model.UserStore, logger *logger.Logger) *Bridge {
	return &Bridge{
		userStore: userStore,
		logger:    logger,
	}
}

// Serialize derives the session payload from a user. The payload is stable
// for a given user and carries no role flags or password material.
func (b *Bridge) Serialize(user model.User) string {
	return user.ID.String()
}

// Resolve reconstructs the user from a session payload. A payload that does
// not parse or no longer matches a stored user yields model.ErrSessionInvalid;
// store faults are wrapped and surfaced distinctly so callers can tell a dead
// session from a broken store.
func (b *Bridge) Resolve(ctx context.Context, payload string) (model.User, error) {
	id, err := uuid.Parse(payload)
	if err != nil {
		b.logger.Info("Bridge: session payload is not a user id",
			"error", err.Error())
		return model.User{}, model.ErrSessionInvalid
	}

	user, err := b.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		b.logger.Info("Bridge: session user no longer exists",
			"user_id", id)
		return model.User{}, model.ErrSessionInvalid
	}
	if err != nil {
		b.logger.Error("Bridge: failed to get user by id",
			"user_id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
