package service

import (
	"context"

	"go.uber.org/zap"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
	"plotbook/internal/port"
)

// TimelineInput is the DTO describing a plot's payment plan.
type TimelineInput struct {
	StartDate              domain.Date
	DPType                 domain.DownPaymentType
	DPAmount               float64
	DPDuration             domain.DurationWindow
	TotalDuration          domain.DurationWindow
	NumInstallments        float64
	AgentName              string
	AgentPhone             string
	AgentCommissionPercent float64
	// Force rebuilds even when payments have been recorded, discarding them.
	Force bool
}

// PreviewTimelineInput is the DTO for an unsaved timeline preview.
type PreviewTimelineInput struct {
	NetTotal float64
	TimelineInput
}

// PlotService manages plot payment timelines.
type PlotService interface {
	PreviewTimeline(input *PreviewTimelineInput) *domain.PlotTimeline
	GetTimeline(ctx context.Context, projectID int64, plotID string) (*domain.PlotTimeline, error)
	BuildTimeline(ctx context.Context, projectID int64, plotID string, input *TimelineInput) (*domain.PlotTimeline, error)
	ConfirmPayment(ctx context.Context, projectID int64, plotID string, index int, input *calculator.PaymentInput) (*domain.PlotTimeline, error)
	UndoPayment(ctx context.Context, projectID int64, plotID string, index int) (*domain.PlotTimeline, error)
	EditInstallment(ctx context.Context, projectID int64, plotID string, index int, edit *calculator.InstallmentEdit) (*domain.PlotTimeline, error)
	DeleteInstallment(ctx context.Context, projectID int64, plotID string, index int) (*domain.PlotTimeline, error)
}

type plotService struct {
	projectRepo port.ProjectRepository
	logger      *zap.Logger
	today       func() domain.Date
}

// NewPlotService creates a new PlotService.
func NewPlotService(projectRepo port.ProjectRepository, logger *zap.Logger) PlotService {
	return &plotService{projectRepo: projectRepo, logger: logger, today: domain.Today}
}

func (s *plotService) dealState(input *TimelineInput) *domain.PlotDealState {
	start := input.StartDate
	if start.IsZero() {
		start = s.today()
	}
	dpType := input.DPType
	if dpType != domain.DownPaymentValue {
		dpType = domain.DownPaymentPercent
	}
	return &domain.PlotDealState{
		StartDate:              start,
		DPAmount:               input.DPAmount,
		DPType:                 dpType,
		DPDuration:             input.DPDuration,
		TotalDuration:          input.TotalDuration,
		NumInstallments:        calculator.ClampInstallments(input.NumInstallments),
		AgentName:              input.AgentName,
		AgentPhone:             input.AgentPhone,
		AgentCommissionPercent: input.AgentCommissionPercent,
	}
}

func (s *plotService) PreviewTimeline(input *PreviewTimelineInput) *domain.PlotTimeline {
	deal := s.dealState(&input.TimelineInput)
	deal.Schedule = calculator.BuildTimeline(calculator.ParamsFromDeal(input.NetTotal, deal))
	return timelineView("", input.NetTotal, deal)
}

func (s *plotService) GetTimeline(ctx context.Context, projectID int64, plotID string) (*domain.PlotTimeline, error) {
	st, err := loadProjectState(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	plot, err := st.plot(plotID)
	if err != nil {
		return nil, err
	}
	if plot.Deal == nil {
		return nil, domain.ErrTimelineNotBuilt
	}
	return timelineView(plot.ID, plot.NetTotal(), plot.Deal), nil
}

func (s *plotService) BuildTimeline(ctx context.Context, projectID int64, plotID string, input *TimelineInput) (*domain.PlotTimeline, error) {
	st, err := loadProjectState(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	plot, err := st.plot(plotID)
	if err != nil {
		return nil, err
	}
	if plot.Deal != nil && plot.Deal.HasPayments() && !input.Force {
		return nil, domain.ErrScheduleHasPayments
	}

	deal := s.dealState(input)
	deal.Schedule = calculator.BuildTimeline(calculator.ParamsFromDeal(plot.NetTotal(), deal))
	plot.Deal = deal
	if plot.Status == domain.PlotStatusAvailable {
		plot.Status = domain.PlotStatusBooked
	}

	if err := st.save(ctx, s.projectRepo); err != nil {
		return nil, err
	}
	s.logger.Info("plot timeline built",
		zap.Int64("project_id", projectID),
		zap.String("plot_id", plotID),
		zap.Int("rows", len(deal.Schedule)),
		zap.Bool("forced", input.Force))
	return timelineView(plot.ID, plot.NetTotal(), plot.Deal), nil
}

func (s *plotService) ConfirmPayment(ctx context.Context, projectID int64, plotID string, index int, input *calculator.PaymentInput) (*domain.PlotTimeline, error) {
	in := *input
	if in.PaymentDate.IsZero() {
		in.PaymentDate = s.today()
	}
	if in.PaidAmount != nil && *in.PaidAmount < 0 {
		return nil, domain.ErrNegativeAmount
	}
	return s.mutateSchedule(ctx, projectID, plotID, "payment confirmed", index,
		func(schedule []domain.PaymentInstallment, end domain.Date) ([]domain.PaymentInstallment, error) {
			return calculator.ConfirmPayment(schedule, index, in, end)
		})
}

func (s *plotService) UndoPayment(ctx context.Context, projectID int64, plotID string, index int) (*domain.PlotTimeline, error) {
	return s.mutateSchedule(ctx, projectID, plotID, "payment undone", index,
		func(schedule []domain.PaymentInstallment, _ domain.Date) ([]domain.PaymentInstallment, error) {
			return calculator.UndoPayment(schedule, index)
		})
}

func (s *plotService) EditInstallment(ctx context.Context, projectID int64, plotID string, index int, edit *calculator.InstallmentEdit) (*domain.PlotTimeline, error) {
	return s.mutateSchedule(ctx, projectID, plotID, "installment edited", index,
		func(schedule []domain.PaymentInstallment, _ domain.Date) ([]domain.PaymentInstallment, error) {
			return calculator.EditInstallment(schedule, index, *edit)
		})
}

func (s *plotService) DeleteInstallment(ctx context.Context, projectID int64, plotID string, index int) (*domain.PlotTimeline, error) {
	return s.mutateSchedule(ctx, projectID, plotID, "installment deleted", index,
		func(schedule []domain.PaymentInstallment, _ domain.Date) ([]domain.PaymentInstallment, error) {
			return calculator.DeleteInstallment(schedule, index)
		})
}

type scheduleReducer func(schedule []domain.PaymentInstallment, endDate domain.Date) ([]domain.PaymentInstallment, error)

// mutateSchedule loads the plot, applies reduce to its schedule and saves the project.
func (s *plotService) mutateSchedule(ctx context.Context, projectID int64, plotID, action string, index int, reduce scheduleReducer) (*domain.PlotTimeline, error) {
	st, err := loadProjectState(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	plot, err := st.plot(plotID)
	if err != nil {
		return nil, err
	}
	if plot.Deal == nil {
		return nil, domain.ErrTimelineNotBuilt
	}

	schedule, err := reduce(plot.Deal.Schedule, plot.Deal.EndDate())
	if err != nil {
		return nil, err
	}
	plot.Deal.Schedule = schedule

	if err := st.save(ctx, s.projectRepo); err != nil {
		return nil, err
	}
	s.logger.Info(action,
		zap.Int64("project_id", projectID),
		zap.String("plot_id", plotID),
		zap.Int("index", index))
	return timelineView(plot.ID, plot.NetTotal(), plot.Deal), nil
}

func timelineView(plotID string, netTotal float64, deal *domain.PlotDealState) *domain.PlotTimeline {
	schedule := deal.Schedule
	if schedule == nil {
		schedule = []domain.PaymentInstallment{}
	}
	return &domain.PlotTimeline{
		PlotID:    plotID,
		NetTotal:  netTotal,
		DPDueDate: deal.DPDueDate(),
		EndDate:   deal.EndDate(),
		Schedule:  schedule,
		Summary:   calculator.SummarizeTimeline(schedule),
	}
}
