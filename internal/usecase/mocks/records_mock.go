package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"files-manager/internal/domain/entities"
)

// MockRecords is a mock implementation of repository.Records
type MockRecords struct {
	mock.Mock
}

// CreateUser mocks the CreateUser method
func (m *MockRecords) CreateUser(ctx context.Context, email, passwordHash string) (*entities.User, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// FindUserByEmail mocks the FindUserByEmail method
func (m *MockRecords) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// FindUserByID mocks the FindUserByID method
func (m *MockRecords) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// InsertFile mocks the InsertFile method
func (m *MockRecords) InsertFile(ctx context.Context, file *entities.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

// FindFileByID mocks the FindFileByID method
func (m *MockRecords) FindFileByID(ctx context.Context, id string) (*entities.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.File), args.Error(1)
}

// FindFilesByParent mocks the FindFilesByParent method
func (m *MockRecords) FindFilesByParent(ctx context.Context, userID, parentID string, page int) ([]*entities.File, error) {
	args := m.Called(ctx, userID, parentID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.File), args.Error(1)
}

// UpdateFileVisibility mocks the UpdateFileVisibility method
func (m *MockRecords) UpdateFileVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*entities.File, error) {
	args := m.Called(ctx, id, ownerID, isPublic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.File), args.Error(1)
}

// CountUsers mocks the CountUsers method
func (m *MockRecords) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// CountFiles mocks the CountFiles method
func (m *MockRecords) CountFiles(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Ping mocks the Ping method
func (m *MockRecords) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
