package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTaskQueue is a mock implementation of repository.TaskQueue
type MockTaskQueue struct {
	mock.Mock
}

// EnqueueThumbnail mocks the EnqueueThumbnail method
func (m *MockTaskQueue) EnqueueThumbnail(ctx context.Context, fileID, userID string) error {
	args := m.Called(ctx, fileID, userID)
	return args.Error(0)
}

// EnqueueWelcome mocks the EnqueueWelcome method
func (m *MockTaskQueue) EnqueueWelcome(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
