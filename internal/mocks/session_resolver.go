package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dvoronin/membergate/internal/model"
)

// SessionResolver is a mock implementation of middleware.SessionResolver.
type SessionResolver struct {
	mock.Mock
}

// NewSessionResolver creates a SessionResolver mock that asserts expectations on cleanup.
func NewSessionResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionResolver {
	m := &SessionResolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionResolver) Resolve(ctx context.Context, sessionID string) (model.User, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.User), args.Error(1)
}
