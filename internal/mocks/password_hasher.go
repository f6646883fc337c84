package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock implementation of auth.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

// NewPasswordHasher creates a PasswordHasher mock that asserts expectations on cleanup.
func NewPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}
