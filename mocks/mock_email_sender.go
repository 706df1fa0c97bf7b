package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plotbook/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendStatementLink(ctx context.Context, msg port.StatementEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
