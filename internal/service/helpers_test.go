package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"plotbook/internal/domain"
	"plotbook/internal/service"
	"plotbook/mocks"
)

func ptr[T any](v T) *T { return &v }

// storedProject encodes plotting into a project row the way the repository returns it.
func storedProject(t *testing.T, id int64, plotting *domain.PlottingData) *domain.Project {
	t.Helper()
	plottingJSON, err := json.Marshal(plotting)
	require.NoError(t, err)
	fullJSON, err := json.Marshal(domain.ProjectSnapshot{Plotting: plotting})
	require.NoError(t, err)
	return &domain.Project{
		ID:            id,
		ProjectName:   "Green Acres",
		VillageName:   "Sanand",
		CreatedAt:     time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC),
		TotalLandCost: 21_480_000,
		PlottingData:  plottingJSON,
		FullData:      fullJSON,
	}
}

// savedBlobs records the blobs passed to UpdateData.
type savedBlobs struct {
	calls    int
	plotting domain.PlottingData
	snapshot domain.ProjectSnapshot
}

func expectSave(t *testing.T, repo *mocks.MockProjectRepo, id int64) *savedBlobs {
	t.Helper()
	saved := &savedBlobs{}
	repo.On("UpdateData", mock.Anything, id, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved.calls++
			require.NoError(t, json.Unmarshal(args.Get(2).(json.RawMessage), &saved.plotting))
			require.NoError(t, json.Unmarshal(args.Get(3).(json.RawMessage), &saved.snapshot))
		}).
		Return(nil)
	return saved
}

// bookedPlot is a 200 vaar plot with a net total of 1,000,000.
func bookedPlot() domain.Plot {
	return domain.Plot{
		ID:             "plot-1",
		PlotNumber:     "A-12",
		AreaVaar:       200,
		CustomLandRate: 4500,
		DevRate:        500,
		CustomerName:   "Ravi Patel",
		Status:         domain.PlotStatusAvailable,
	}
}

func quarterlyInput() *service.TimelineInput {
	return &service.TimelineInput{
		StartDate:       domain.NewDate(2024, time.January, 1),
		DPType:          domain.DownPaymentPercent,
		DPAmount:        25,
		DPDuration:      domain.DurationWindow{Value: 30, Unit: domain.DurationDays},
		TotalDuration:   domain.DurationWindow{Value: 12, Unit: domain.DurationMonths},
		NumInstallments: 3,
	}
}
