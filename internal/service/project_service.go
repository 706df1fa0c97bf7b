package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
	"plotbook/internal/port"
)

// UpdatePlottingInput is the DTO for updating project-level plotting settings.
// Nil fields are left unchanged.
type UpdatePlottingInput struct {
	LandRate            *float64
	DevRate             *float64
	TotalPlots          *int
	DevelopmentExpenses []domain.DevelopmentExpense
}

// PlotInput is the DTO for adding or updating a plot. Nil rates fall back to
// the project's rates when adding and are left unchanged when updating.
type PlotInput struct {
	PlotNumber     string
	AreaVaar       float64
	CustomLandRate *float64
	DevRate        *float64
	Discount       float64
	CustomerName   string
	CustomerPhone  string
	Status         domain.PlotStatus
}

// ProjectService manages saved projects and their plots.
type ProjectService interface {
	List(ctx context.Context, offset, limit int) ([]domain.ProjectSummary, int, error)
	Get(ctx context.Context, id int64) (*domain.ProjectDetail, error)
	Delete(ctx context.Context, id int64) error
	UpdatePlotting(ctx context.Context, id int64, input *UpdatePlottingInput) (*domain.PlottingData, error)
	AddPlot(ctx context.Context, id int64, input *PlotInput) (*domain.Plot, error)
	UpdatePlot(ctx context.Context, id int64, plotID string, input *PlotInput) (*domain.Plot, error)
	RemovePlot(ctx context.Context, id int64, plotID string) error
	WeightedRate(ctx context.Context, id int64) (float64, error)
}

type projectService struct {
	projectRepo port.ProjectRepository
	logger      *zap.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo port.ProjectRepository, logger *zap.Logger) ProjectService {
	return &projectService{projectRepo: projectRepo, logger: logger}
}

func (s *projectService) List(ctx context.Context, offset, limit int) ([]domain.ProjectSummary, int, error) {
	projects, total, err := s.projectRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]domain.ProjectSummary, 0, len(projects))
	for i := range projects {
		summaries = append(summaries, s.summarize(&projects[i]))
	}
	return summaries, total, nil
}

// summarize builds a list row. Projects with unreadable plotting data are
// still listed, with zero plot counts.
func (s *projectService) summarize(p *domain.Project) domain.ProjectSummary {
	sum := domain.ProjectSummary{
		ID:            p.ID,
		ProjectName:   p.ProjectName,
		VillageName:   p.VillageName,
		CreatedAt:     p.CreatedAt,
		TotalLandCost: p.TotalLandCost,
	}
	if !p.HasData() {
		return sum
	}

	var plotting domain.PlottingData
	if err := json.Unmarshal(p.PlottingData, &plotting); err != nil {
		s.logger.Warn("unreadable plotting data", zap.Int64("project_id", p.ID), zap.Error(err))
		return sum
	}
	sum.TotalPlots = plotting.TotalPlots
	if n := len(plotting.PlotSales); n > sum.TotalPlots {
		sum.TotalPlots = n
	}
	for i := range plotting.PlotSales {
		if plotting.PlotSales[i].Status == domain.PlotStatusSold {
			sum.PlotsSold++
		}
	}
	return sum
}

func (s *projectService) Get(ctx context.Context, id int64) (*domain.ProjectDetail, error) {
	st, err := loadProjectState(ctx, s.projectRepo, id)
	if err != nil {
		return nil, err
	}
	return st.detail(), nil
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", zap.Int64("project_id", id))
	return nil
}

func (s *projectService) UpdatePlotting(ctx context.Context, id int64, input *UpdatePlottingInput) (*domain.PlottingData, error) {
	st, err := loadProjectState(ctx, s.projectRepo, id)
	if err != nil {
		return nil, err
	}

	if input.LandRate != nil {
		if *input.LandRate < 0 {
			return nil, domain.ErrNegativeAmount
		}
		st.plotting.LandRate = *input.LandRate
	}
	if input.DevRate != nil {
		if *input.DevRate < 0 {
			return nil, domain.ErrNegativeAmount
		}
		st.plotting.DevRate = *input.DevRate
	}
	if input.TotalPlots != nil {
		if *input.TotalPlots < 0 {
			return nil, domain.ErrNegativeAmount
		}
		st.plotting.TotalPlots = *input.TotalPlots
	}
	if input.DevelopmentExpenses != nil {
		st.plotting.DevelopmentExpenses = input.DevelopmentExpenses
	}

	if err := st.save(ctx, s.projectRepo); err != nil {
		return nil, err
	}
	return st.plotting, nil
}

func (s *projectService) AddPlot(ctx context.Context, id int64, input *PlotInput) (*domain.Plot, error) {
	st, err := loadProjectState(ctx, s.projectRepo, id)
	if err != nil {
		return nil, err
	}

	plot := domain.Plot{
		ID:             uuid.New().String(),
		CustomLandRate: seedLandRate(st.plotting),
		DevRate:        st.plotting.DevRate,
		Status:         domain.PlotStatusAvailable,
	}
	if err := applyPlotInput(st.plotting, &plot, input); err != nil {
		return nil, err
	}

	st.plotting.PlotSales = append(st.plotting.PlotSales, plot)
	st.plotting.CurrentAvgRate = calculator.WeightedAverageRate(st.plotting.PlotSales)

	if err := st.save(ctx, s.projectRepo); err != nil {
		return nil, err
	}
	s.logger.Info("plot added",
		zap.Int64("project_id", id),
		zap.String("plot_id", plot.ID),
		zap.String("plot_number", plot.PlotNumber))
	return &plot, nil
}

func (s *projectService) UpdatePlot(ctx context.Context, id int64, plotID string, input *PlotInput) (*domain.Plot, error) {
	st, err := loadProjectState(ctx, s.projectRepo, id)
	if err != nil {
		return nil, err
	}
	plot, err := st.plot(plotID)
	if err != nil {
		return nil, err
	}

	updated := *plot
	if err := applyPlotInput(st.plotting, &updated, input); err != nil {
		return nil, err
	}
	*plot = updated
	st.plotting.CurrentAvgRate = calculator.WeightedAverageRate(st.plotting.PlotSales)

	if err := st.save(ctx, s.projectRepo); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *projectService) RemovePlot(ctx context.Context, id int64, plotID string) error {
	st, err := loadProjectState(ctx, s.projectRepo, id)
	if err != nil {
		return err
	}
	i := st.plotting.FindPlot(plotID)
	if i < 0 {
		return domain.ErrPlotNotFound
	}

	st.plotting.PlotSales = append(st.plotting.PlotSales[:i], st.plotting.PlotSales[i+1:]...)
	st.plotting.CurrentAvgRate = calculator.WeightedAverageRate(st.plotting.PlotSales)

	if err := st.save(ctx, s.projectRepo); err != nil {
		return err
	}
	s.logger.Info("plot removed", zap.Int64("project_id", id), zap.String("plot_id", plotID))
	return nil
}

func (s *projectService) WeightedRate(ctx context.Context, id int64) (float64, error) {
	st, err := loadProjectState(ctx, s.projectRepo, id)
	if err != nil {
		return 0, err
	}
	return calculator.WeightedAverageRate(st.plotting.PlotSales), nil
}

// seedLandRate is the rate a new plot starts at: the running weighted
// average once plots exist, otherwise the project land rate.
func seedLandRate(p *domain.PlottingData) float64 {
	if p.CurrentAvgRate > 0 {
		return p.CurrentAvgRate
	}
	return p.LandRate
}

// applyPlotInput validates input and copies it onto plot.
func applyPlotInput(p *domain.PlottingData, plot *domain.Plot, input *PlotInput) error {
	number := strings.TrimSpace(input.PlotNumber)
	if number == "" {
		return domain.ErrPlotNumberRequired
	}
	for i := range p.PlotSales {
		other := &p.PlotSales[i]
		if other.ID != plot.ID && strings.EqualFold(strings.TrimSpace(other.PlotNumber), number) {
			return domain.ErrDuplicatePlotNumber
		}
	}
	if input.AreaVaar < 0 || input.Discount < 0 {
		return domain.ErrNegativeAmount
	}
	if input.CustomLandRate != nil && *input.CustomLandRate < 0 {
		return domain.ErrNegativeAmount
	}
	if input.DevRate != nil && *input.DevRate < 0 {
		return domain.ErrNegativeAmount
	}

	status := input.Status
	if status == "" {
		status = plot.Status
	}
	if !domain.ValidPlotStatuses[status] {
		return domain.ErrInvalidPlotStatus
	}

	plot.PlotNumber = number
	plot.AreaVaar = input.AreaVaar
	plot.Discount = input.Discount
	plot.CustomerName = strings.TrimSpace(input.CustomerName)
	plot.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	plot.Status = status
	if input.CustomLandRate != nil {
		plot.CustomLandRate = *input.CustomLandRate
	}
	if input.DevRate != nil {
		plot.DevRate = *input.DevRate
	}
	return nil
}
