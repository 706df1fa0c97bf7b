package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"plotbook/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
// Uploaded bodies are drained into LastBody.
type MockObjectStorage struct {
	mock.Mock
	LastBody []byte
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if input.Body != nil {
		m.LastBody, _ = io.ReadAll(input.Body)
	}
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockObjectStorage) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, bucket, key, expirySeconds)
	return args.String(0), args.Error(1)
}
