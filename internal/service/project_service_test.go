package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plotbook/internal/domain"
	"plotbook/internal/service"
	"plotbook/mocks"
)

func setupProjectService() (service.ProjectService, *mocks.MockProjectRepo) {
	repo := new(mocks.MockProjectRepo)
	return service.NewProjectService(repo, zap.NewNop()), repo
}

func twoPlotProject() *domain.PlottingData {
	return &domain.PlottingData{
		LandRate:       1796,
		DevRate:        500,
		CurrentAvgRate: 175,
		TotalPlots:     10,
		PlotSales: []domain.Plot{
			{ID: "p1", PlotNumber: "A-1", AreaVaar: 10, CustomLandRate: 100, Status: domain.PlotStatusSold},
			{ID: "p2", PlotNumber: "A-2", AreaVaar: 30, CustomLandRate: 200, Status: domain.PlotStatusBooked},
		},
	}
}

func TestProjectService_List(t *testing.T) {
	svc, repo := setupProjectService()

	full := storedProject(t, 1, twoPlotProject())
	empty := domain.Project{ID: 2, ProjectName: "Blank"}
	broken := domain.Project{
		ID:           3,
		ProjectName:  "Broken",
		PlottingData: json.RawMessage(`"oops"`),
		FullData:     json.RawMessage(`{}`),
	}
	crowded := storedProject(t, 4, &domain.PlottingData{
		TotalPlots: 1,
		PlotSales:  []domain.Plot{{ID: "x"}, {ID: "y"}, {ID: "z"}},
	})
	repo.On("List", mock.Anything, 0, 20).
		Return([]domain.Project{*full, empty, broken, *crowded}, 4, nil)

	rows, total, err := svc.List(context.Background(), 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, rows, 4)
	assert.Equal(t, 10, rows[0].TotalPlots)
	assert.Equal(t, 1, rows[0].PlotsSold)
	assert.Equal(t, "Green Acres", rows[0].ProjectName)
	assert.Zero(t, rows[1].TotalPlots)
	assert.Zero(t, rows[2].TotalPlots)
	assert.Equal(t, "Broken", rows[2].ProjectName)
	assert.Equal(t, 3, rows[3].TotalPlots)
}

func TestProjectService_Get(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)

	detail, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.ID)
	assert.Len(t, detail.Plotting.PlotSales, 2)
	require.NotNil(t, detail.Snapshot)
}

func TestProjectService_Get_DataMissing(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.Project{ID: 2, PlottingData: json.RawMessage(`null`)}, nil)

	_, err := svc.Get(context.Background(), 2)

	assert.ErrorIs(t, err, domain.ErrProjectDataMissing)
}

func TestProjectService_Get_NotFound(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, domain.ErrProjectNotFound)

	_, err := svc.Get(context.Background(), 9)

	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectService_AddPlot_SeedsRatesAndRecomputesAverage(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)
	saved := expectSave(t, repo, 1)

	plot, err := svc.AddPlot(context.Background(), 1, &service.PlotInput{
		PlotNumber:   " A-3 ",
		AreaVaar:     40,
		CustomerName: "Meena Shah",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, plot.ID)
	assert.Equal(t, "A-3", plot.PlotNumber)
	assert.Equal(t, 175.0, plot.CustomLandRate)
	assert.Equal(t, 500.0, plot.DevRate)
	assert.Equal(t, domain.PlotStatusAvailable, plot.Status)

	assert.Equal(t, 1, saved.calls)
	require.Len(t, saved.plotting.PlotSales, 3)
	// (100*10 + 200*30 + 175*40) / 80
	assert.Equal(t, 175.0, saved.plotting.CurrentAvgRate)
	require.NotNil(t, saved.snapshot.Plotting)
	assert.Len(t, saved.snapshot.Plotting.PlotSales, 3)
}

func TestProjectService_AddPlot_FirstPlotUsesLandRate(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(storedProject(t, 1, &domain.PlottingData{LandRate: 1796, DevRate: 300}), nil)
	saved := expectSave(t, repo, 1)

	plot, err := svc.AddPlot(context.Background(), 1, &service.PlotInput{
		PlotNumber: "1",
		AreaVaar:   100,
		DevRate:    ptr(450.0),
	})

	require.NoError(t, err)
	assert.Equal(t, 1796.0, plot.CustomLandRate)
	assert.Equal(t, 450.0, plot.DevRate)
	assert.Equal(t, 1796.0, saved.plotting.CurrentAvgRate)
}

func TestProjectService_AddPlot_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input service.PlotInput
		want  error
	}{
		{"blank number", service.PlotInput{PlotNumber: "  "}, domain.ErrPlotNumberRequired},
		{"duplicate number", service.PlotInput{PlotNumber: "a-1"}, domain.ErrDuplicatePlotNumber},
		{"negative area", service.PlotInput{PlotNumber: "B-1", AreaVaar: -1}, domain.ErrNegativeAmount},
		{"negative rate", service.PlotInput{PlotNumber: "B-1", CustomLandRate: ptr(-5.0)}, domain.ErrNegativeAmount},
		{"bad status", service.PlotInput{PlotNumber: "B-1", Status: "reserved"}, domain.ErrInvalidPlotStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupProjectService()
			repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)

			input := tt.input
			_, err := svc.AddPlot(context.Background(), 1, &input)

			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "UpdateData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestProjectService_UpdatePlot(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)
	saved := expectSave(t, repo, 1)

	plot, err := svc.UpdatePlot(context.Background(), 1, "p2", &service.PlotInput{
		PlotNumber:     "A-2",
		AreaVaar:       30,
		CustomLandRate: ptr(300.0),
		Discount:       1000,
	})

	require.NoError(t, err)
	assert.Equal(t, "p2", plot.ID)
	assert.Equal(t, 300.0, plot.CustomLandRate)
	assert.Equal(t, domain.PlotStatusBooked, plot.Status)
	// (100*10 + 300*30) / 40
	assert.Equal(t, 250.0, saved.plotting.CurrentAvgRate)
	assert.Equal(t, 1000.0, saved.plotting.PlotSales[1].Discount)
}

func TestProjectService_UpdatePlot_NotFound(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)

	_, err := svc.UpdatePlot(context.Background(), 1, "missing", &service.PlotInput{PlotNumber: "Z"})

	assert.ErrorIs(t, err, domain.ErrPlotNotFound)
}

func TestProjectService_RemovePlot(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)
	saved := expectSave(t, repo, 1)

	require.NoError(t, svc.RemovePlot(context.Background(), 1, "p1"))

	require.Len(t, saved.plotting.PlotSales, 1)
	assert.Equal(t, "p2", saved.plotting.PlotSales[0].ID)
	assert.Equal(t, 200.0, saved.plotting.CurrentAvgRate)
}

func TestProjectService_UpdatePlotting(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)
	saved := expectSave(t, repo, 1)

	plotting, err := svc.UpdatePlotting(context.Background(), 1, &service.UpdatePlottingInput{
		DevRate:             ptr(650.0),
		DevelopmentExpenses: []domain.DevelopmentExpense{{Label: "Roads", Amount: 250_000}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1796.0, plotting.LandRate)
	assert.Equal(t, 650.0, plotting.DevRate)
	assert.Equal(t, 10, plotting.TotalPlots)
	assert.Equal(t, 250_000.0, saved.plotting.TotalDevelopmentExpense())
}

func TestProjectService_UpdatePlotting_RejectsNegative(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)

	_, err := svc.UpdatePlotting(context.Background(), 1, &service.UpdatePlottingInput{TotalPlots: ptr(-1)})

	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	repo.AssertNotCalled(t, "UpdateData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_WeightedRate(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("GetByID", mock.Anything, int64(1)).Return(storedProject(t, 1, twoPlotProject()), nil)

	rate, err := svc.WeightedRate(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 175.0, rate)
}

func TestProjectService_Delete(t *testing.T) {
	svc, repo := setupProjectService()
	repo.On("Delete", mock.Anything, int64(5)).Return(domain.ErrProjectNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), 5), domain.ErrProjectNotFound)
}
