package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
	"plotbook/internal/port"
)

// SaveDealInput is the DTO for saving a deal as a new project.
type SaveDealInput struct {
	ProjectName string
	Deal        domain.DealInput
}

// DealService structures land deals and turns them into projects.
type DealService interface {
	// Calculate fills a blank purchase date with today and computes the deal.
	Calculate(in *domain.DealInput) *domain.CalculationResult
	SaveAsProject(ctx context.Context, input *SaveDealInput) (*domain.ProjectDetail, error)
}

type dealService struct {
	projectRepo port.ProjectRepository
	logger      *zap.Logger
	today       func() domain.Date
}

// NewDealService creates a new DealService.
func NewDealService(projectRepo port.ProjectRepository, logger *zap.Logger) DealService {
	return &dealService{projectRepo: projectRepo, logger: logger, today: domain.Today}
}

func (s *dealService) Calculate(in *domain.DealInput) *domain.CalculationResult {
	if in.Financials.PurchaseDate.IsZero() {
		in.Financials.PurchaseDate = s.today()
	}
	if in.Overheads.StampDutyType != domain.StampDutyOnJantri {
		in.Overheads.StampDutyType = domain.StampDutyOnDealPrice
	}
	return calculator.ComputeDeal(in)
}

func (s *dealService) SaveAsProject(ctx context.Context, input *SaveDealInput) (*domain.ProjectDetail, error) {
	deal := input.Deal
	res := s.Calculate(&deal)

	landRate := calculator.PerVaarRate(res.CostPerSqMt)
	plotting := &domain.PlottingData{
		LandRate:            landRate,
		CurrentAvgRate:      landRate,
		DevelopmentExpenses: []domain.DevelopmentExpense{},
		PlotSales:           []domain.Plot{},
	}
	snapshot := &domain.ProjectSnapshot{Deal: &deal, Result: res, Plotting: plotting}

	plottingJSON, fullJSON, err := encodeBlobs(plotting, snapshot)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		ProjectName:   projectName(input.ProjectName, deal.Identity.VillageName),
		VillageName:   strings.TrimSpace(deal.Identity.VillageName),
		TotalLandCost: res.LandedCost,
		PlottingData:  plottingJSON,
		FullData:      fullJSON,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project saved from deal",
		zap.Int64("project_id", project.ID),
		zap.String("project_name", project.ProjectName),
		zap.Float64("landed_cost", res.LandedCost))

	st := &projectState{project: project, plotting: plotting, snapshot: snapshot}
	return st.detail(), nil
}

// projectName falls back to the village name, then to a placeholder.
func projectName(name, village string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if v := strings.TrimSpace(village); v != "" {
		return v + " Project"
	}
	return "Untitled Project"
}
