//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dvoronin/membergate/internal/model"
	repo "github.com/dvoronin/membergate/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "membergate_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/membergate_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(t *testing.T, username string) model.User {
	t.Helper()
	u, err := model.NewUser("Anna", "Karenina", username, "$2a$10$hash")
	require.NoError(t, err)
	return u
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	t.Run("create_and_get", func(t *testing.T) {
		u := newUser(t, "anna")
		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, u.ID, saved.ID)

		byName, err := ur.GetByUsername(ctx, "anna")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)
		assert.False(t, byName.Member)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "anna", byID.Username)
	})

	t.Run("username_is_case_sensitive", func(t *testing.T) {
		_, err := ur.GetByUsername(ctx, "Anna")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("duplicate_username", func(t *testing.T) {
		_, err := ur.Create(ctx, newUser(t, "anna"))
		assert.ErrorIs(t, err, model.ErrUsernameTaken)
	})

	t.Run("update_roles", func(t *testing.T) {
		u, err := ur.GetByUsername(ctx, "anna")
		require.NoError(t, err)

		updated, err := ur.UpdateRoles(ctx, u.ID, true, true)
		require.NoError(t, err)
		assert.True(t, updated.Member)
		assert.True(t, updated.Admin)
		assert.True(t, updated.UpdatedAt.After(u.UpdatedAt))
	})

	t.Run("update_roles_missing_user", func(t *testing.T) {
		_, err := ur.UpdateRoles(ctx, uuid.New(), true, false)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		u := newUser(t, "todelete")
		_, err := ur.Create(ctx, u)
		require.NoError(t, err)

		require.NoError(t, ur.Delete(ctx, u.ID))

		_, err = ur.GetByID(ctx, u.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		assert.ErrorIs(t, ur.Delete(ctx, u.ID), model.ErrNotFound)
	})

	t.Run("get_missing", func(t *testing.T) {
		_, err := ur.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, model.ErrNotFound)

		_, err = ur.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
