package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// MockDealService is a mock implementation of service.DealService.
type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) Calculate(in *domain.DealInput) *domain.CalculationResult {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.CalculationResult)
}

func (m *MockDealService) SaveAsProject(ctx context.Context, input *service.SaveDealInput) (*domain.ProjectDetail, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectDetail), args.Error(1)
}
