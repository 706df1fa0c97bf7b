package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// MockPlotService is a mock implementation of service.PlotService.
type MockPlotService struct {
	mock.Mock
}

func (m *MockPlotService) PreviewTimeline(input *service.PreviewTimelineInput) *domain.PlotTimeline {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.PlotTimeline)
}

func (m *MockPlotService) GetTimeline(ctx context.Context, projectID int64, plotID string) (*domain.PlotTimeline, error) {
	args := m.Called(ctx, projectID, plotID)
	return timelineResult(args)
}

func (m *MockPlotService) BuildTimeline(ctx context.Context, projectID int64, plotID string, input *service.TimelineInput) (*domain.PlotTimeline, error) {
	args := m.Called(ctx, projectID, plotID, input)
	return timelineResult(args)
}

func (m *MockPlotService) ConfirmPayment(ctx context.Context, projectID int64, plotID string, index int, input *calculator.PaymentInput) (*domain.PlotTimeline, error) {
	args := m.Called(ctx, projectID, plotID, index, input)
	return timelineResult(args)
}

func (m *MockPlotService) UndoPayment(ctx context.Context, projectID int64, plotID string, index int) (*domain.PlotTimeline, error) {
	args := m.Called(ctx, projectID, plotID, index)
	return timelineResult(args)
}

func (m *MockPlotService) EditInstallment(ctx context.Context, projectID int64, plotID string, index int, edit *calculator.InstallmentEdit) (*domain.PlotTimeline, error) {
	args := m.Called(ctx, projectID, plotID, index, edit)
	return timelineResult(args)
}

func (m *MockPlotService) DeleteInstallment(ctx context.Context, projectID int64, plotID string, index int) (*domain.PlotTimeline, error) {
	args := m.Called(ctx, projectID, plotID, index)
	return timelineResult(args)
}

func timelineResult(args mock.Arguments) (*domain.PlotTimeline, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlotTimeline), args.Error(1)
}
