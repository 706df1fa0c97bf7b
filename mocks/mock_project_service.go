package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// MockProjectService is a mock implementation of service.ProjectService.
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) List(ctx context.Context, offset, limit int) ([]domain.ProjectSummary, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ProjectSummary), args.Int(1), args.Error(2)
}

func (m *MockProjectService) Get(ctx context.Context, id int64) (*domain.ProjectDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectDetail), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectService) UpdatePlotting(ctx context.Context, id int64, input *service.UpdatePlottingInput) (*domain.PlottingData, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlottingData), args.Error(1)
}

func (m *MockProjectService) AddPlot(ctx context.Context, id int64, input *service.PlotInput) (*domain.Plot, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}

func (m *MockProjectService) UpdatePlot(ctx context.Context, id int64, plotID string, input *service.PlotInput) (*domain.Plot, error) {
	args := m.Called(ctx, id, plotID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}

func (m *MockProjectService) RemovePlot(ctx context.Context, id int64, plotID string) error {
	args := m.Called(ctx, id, plotID)
	return args.Error(0)
}

func (m *MockProjectService) WeightedRate(ctx context.Context, id int64) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}
