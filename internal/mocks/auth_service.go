package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dvoronin/membergate/internal/model"
)

// AuthService is a mock implementation of handler.AuthService.
type AuthService struct {
	mock.Mock
}

// NewAuthService creates an AuthService mock that asserts expectations on cleanup.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthService) VerifyCredentials(ctx context.Context, username, password string) (model.User, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *AuthService) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *AuthService) UpdateRoles(ctx context.Context, id uuid.UUID, member, admin bool) (model.User, error) {
	args := m.Called(ctx, id, member, admin)
	return args.Get(0).(model.User), args.Error(1)
}

// SessionService is a mock implementation of handler.SessionService.
type SessionService struct {
	mock.Mock
}

// NewSessionService creates a SessionService mock that asserts expectations on cleanup.
func NewSessionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionService {
	m := &SessionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionService) Issue(ctx context.Context, user model.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *SessionService) Drop(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
