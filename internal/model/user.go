package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateRoles(ctx context.Context, id uuid.UUID, member, admin bool) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegisterParams carries the signup form fields.
type RegisterParams struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
}

// User represents a registered user with credentials and role flags.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Username     string
	PasswordHash string
	Member       bool
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a validated User. Required text fields must be non-empty;
// passwordHash is the already-hashed password, never the plaintext.
func NewUser(firstName, lastName, username, passwordHash string) (User, error) {
	if firstName == "" {
		return User{}, NewMissingFieldError("first_name")
	}
	if lastName == "" {
		return User{}, NewMissingFieldError("last_name")
	}
	if username == "" {
		return User{}, NewMissingFieldError("username")
	}
	if passwordHash == "" {
		return User{}, NewMissingFieldError("password")
	}

	now := time.Now()
	return User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Name returns the display name, computed from first and last name.
func (u User) Name() string {
	return u.FirstName + " " + u.LastName
}
