package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) DealReport(ctx context.Context, in *domain.DealInput) (*service.ReportFile, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportFile), args.Error(1)
}

func (m *MockReportService) Statement(ctx context.Context, projectID int64, plotID string, format domain.ExportFormat) (*service.ReportFile, error) {
	args := m.Called(ctx, projectID, plotID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportFile), args.Error(1)
}

func (m *MockReportService) ShareStatement(ctx context.Context, projectID int64, plotID string, input *service.ShareStatementInput) (*service.SharedStatement, error) {
	args := m.Called(ctx, projectID, plotID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SharedStatement), args.Error(1)
}
