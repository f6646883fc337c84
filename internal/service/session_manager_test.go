package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dvoronin/membergate/internal/mocks"
	"github.com/dvoronin/membergate/internal/model"
	"github.com/dvoronin/membergate/internal/session"
	"github.com/dvoronin/membergate/internal/testutil"
)

func newTestManager(t *testing.T, userStore model.UserStore) *SessionManager {
	t.Helper()
	lg := testutil.MakeNoopLogger()
	return NewSessionManager(NewBridge(userStore, lg), session.NewMemoryStore(), time.Hour, lg)
}

func TestSessionManager_IssueAndResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userStore := mocks.NewUserStore(t)

	user := model.User{ID: uuid.New(), Username: "anna"}
	userStore.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	m := newTestManager(t, userStore)

	sessionID, err := m.Issue(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	// opaque hex, not the user id
	assert.NotEqual(t, user.ID.String(), sessionID)
	assert.Len(t, sessionID, sessionIDBytes*2)

	got, err := m.Resolve(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestSessionManager_Issue_UniqueIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	user := model.User{ID: uuid.New()}

	m := newTestManager(t, userStore)

	first, err := m.Issue(ctx, user)
	require.NoError(t, err)
	second, err := m.Issue(ctx, user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSessionManager_Resolve_UnknownSession(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, mocks.NewUserStore(t))

	_, err := m.Resolve(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, model.ErrSessionInvalid)
}

func TestSessionManager_Resolve_UserDeletedAfterIssue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userStore := mocks.NewUserStore(t)

	user := model.User{ID: uuid.New()}
	userStore.On("GetByID", mock.Anything, user.ID).Return(model.User{}, model.ErrNotFound)

	m := newTestManager(t, userStore)

	sessionID, err := m.Issue(ctx, user)
	require.NoError(t, err)

	_, err = m.Resolve(ctx, sessionID)
	assert.ErrorIs(t, err, model.ErrSessionInvalid)
}

func TestSessionManager_Drop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	user := model.User{ID: uuid.New()}

	m := newTestManager(t, userStore)

	sessionID, err := m.Issue(ctx, user)
	require.NoError(t, err)

	require.NoError(t, m.Drop(ctx, sessionID))

	_, err = m.Resolve(ctx, sessionID)
	assert.ErrorIs(t, err, model.ErrSessionInvalid)
}

func TestSessionManager_Drop_UnknownSession(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, mocks.NewUserStore(t))
	assert.NoError(t, m.Drop(context.Background(), "unknown"))
}

func TestSessionManager_Issue_StoreFault(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := mocks.NewSessionStore(t)
	boom := errors.New("redis unavailable")
	store.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), time.Hour).Return(boom)

	lg := testutil.MakeNoopLogger()
	m := NewSessionManager(NewBridge(mocks.NewUserStore(t), lg), store, time.Hour, lg)

	_, err := m.Issue(ctx, model.User{ID: uuid.New()})
	assert.ErrorIs(t, err, boom)
}

func TestNewSessionManager_TTLFallback(t *testing.T) {
	t.Parallel()

	lg := testutil.MakeNoopLogger()
	m := NewSessionManager(NewBridge(mocks.NewUserStore(t), lg), session.NewMemoryStore(), 0, lg)
	assert.Equal(t, model.DefaultSessionTTL, m.ttl)
}
