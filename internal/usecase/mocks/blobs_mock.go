package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockBlobs is a mock implementation of repository.Blobs
type MockBlobs struct {
	mock.Mock
}

// Write mocks the Write method
func (m *MockBlobs) Write(ctx context.Context, r io.Reader) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

// WriteNamed mocks the WriteNamed method
func (m *MockBlobs) WriteNamed(ctx context.Context, handle string, r io.Reader) error {
	args := m.Called(ctx, handle, r)
	return args.Error(0)
}

// Read mocks the Read method
func (m *MockBlobs) Read(ctx context.Context, handle string) (io.ReadCloser, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// Exists mocks the Exists method
func (m *MockBlobs) Exists(ctx context.Context, handle string) (bool, error) {
	args := m.Called(ctx, handle)
	return args.Bool(0), args.Error(1)
}
