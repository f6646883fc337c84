// Package auth provides password hashing primitives for membergate.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted hash of the password.
	Hash(password string) (string, error)

	// Compare checks the plaintext password against a stored hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or an error
	// when the stored hash is malformed. The comparison takes ctx so a
	// caller abandoning the request does not wait on the result.
	Compare(ctx context.Context, password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost.
// A cost below bcrypt.MinCost falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Compare checks the plaintext password against a stored bcrypt hash.
// bcrypt's comparison is constant-time with respect to the password bytes.
// The work runs on a separate goroutine so an aborted request stops waiting;
// the comparison itself always completes exactly once.
func (h *BcryptHasher) Compare(ctx context.Context, password, hash string) (bool, error) {
	type result struct {
		ok  bool
		err error
	}

	ch := make(chan result, 1)
	go func() {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		switch {
		case err == nil:
			ch <- result{ok: true}
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			ch <- result{ok: false}
		default:
			ch <- result{err: fmt.Errorf("failed to compare password hash: %w", err)}
		}
	}()

	select {
	case r := <-ch:
		return r.ok, r.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
