package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// SessionStore is a mock implementation of model.SessionStore.
type SessionStore struct {
	mock.Mock
}

// NewSessionStore creates a SessionStore mock that asserts expectations on cleanup.
func NewSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionStore {
	m := &SessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionStore) Set(ctx context.Context, sessionID, payload string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, payload, ttl)
	return args.Error(0)
}

func (m *SessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *SessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
