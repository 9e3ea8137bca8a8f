package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockSessions is a mock implementation of repository.Sessions
type MockSessions struct {
	mock.Mock
}

// Set mocks the Set method
func (m *MockSessions) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Get mocks the Get method
func (m *MockSessions) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// Del mocks the Del method
func (m *MockSessions) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Ping mocks the Ping method
func (m *MockSessions) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
