package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dvoronin/membergate/internal/model"
)

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository persists users in postgres.
type UserRepository struct {
	db *Connection
}

// NewUserRepository creates a UserRepository on the given connection.
func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, first_name, last_name, username, password_hash, member, admin, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.PasswordHash,
		&user.Member, &user.Admin, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

// GetByUsername returns the user with the exact username, or model.ErrNotFound.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByID returns the user with the given ID, or model.ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Create inserts a new user. A duplicate username yields model.ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, first_name, last_name, username, password_hash, member, admin, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Username, user.PasswordHash,
		user.Member, user.Admin, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrUsernameTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

// UpdateRoles sets the member and admin flags, returning the updated user
// or model.ErrNotFound.
func (r *UserRepository) UpdateRoles(ctx context.Context, id uuid.UUID, member, admin bool) (model.User, error) {
	query := `UPDATE users SET member = $2, admin = $3, updated_at = $4 WHERE id = $1
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, id, member, admin, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user roles: %w", err)
	}

	return user, nil
}

// Delete removes the user with the given ID, or returns model.ErrNotFound.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
