package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"plotbook/internal/domain"
)

// MockProjectRepo is a mock implementation of port.ProjectRepository.
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context, offset, limit int) ([]domain.Project, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Project), args.Int(1), args.Error(2)
}

func (m *MockProjectRepo) UpdateData(ctx context.Context, id int64, plottingData, fullData json.RawMessage) error {
	args := m.Called(ctx, id, plottingData, fullData)
	return args.Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
