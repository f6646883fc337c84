package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dvoronin/membergate/internal/auth"
	"github.com/dvoronin/membergate/internal/logger"
	"github.com/dvoronin/membergate/internal/model"
)

// Auth verifies credentials and manages user registration and role flags.
type Auth struct {
	userStore model.UserStore
	hasher    auth.PasswordHasher
	logger    *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(userStore model.UserStore, hasher auth.PasswordHasher, logger *logger.Logger) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger,
	}
}

// VerifyCredentials checks a username/password pair against the store.
// It returns the matching user on success, model.ErrUserNotFound when no
// user has that username, model.ErrPasswordMismatch when the password is
// wrong, and a wrapped error on store or hash faults. The username is
// matched exactly, with no trimming or case folding. Each call performs
// exactly one store read and at most one hash comparison and mutates
// nothing, so concurrent calls are safe.
func (a *Auth) VerifyCredentials(ctx context.Context, username, password string) (model.User, error) {
	a.logger.Debug("Auth service: verifying credentials",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: user not found",
			"username", username)
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	ok, err := a.hasher.Compare(ctx, password, user.PasswordHash)
	if err != nil {
		a.logger.Error("Auth service: failed to compare password",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to compare password: %w", err)
	}
	if !ok {
		a.logger.Info("Auth service: password mismatch",
			"username", username)
		return model.User{}, model.ErrPasswordMismatch
	}

	a.logger.Info("Auth service: credentials verified",
		"username", username,
		"user_id", user.ID)

	return user, nil
}

// Register hashes the password and creates a new user. New users start
// without membership; the member flag is granted separately.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: registering user",
		"username", params.Username)

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := model.NewUser(params.FirstName, params.LastName, params.Username, hash)
	if err != nil {
		return model.User{}, err
	}

	created, err := a.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			a.logger.Info("Auth service: username already taken",
				"username", params.Username)
			return model.User{}, model.ErrUsernameTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", created.Username,
		"user_id", created.ID)

	return created, nil
}

// UpdateRoles sets the member and admin flags on a user. Role changes are
// picked up on the user's next request because sessions re-read the store.
func (a *Auth) UpdateRoles(ctx context.Context, id uuid.UUID, member, admin bool) (model.User, error) {
	updated, err := a.userStore.UpdateRoles(ctx, id, member, admin)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		a.logger.Error("Auth service: failed to update roles",
			"user_id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update roles: %w", err)
	}

	a.logger.Info("Auth service: roles updated",
		"user_id", updated.ID,
		"member", updated.Member,
		"admin", updated.Admin)

	return updated, nil
}
