package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plotbook/internal/domain"
	"plotbook/internal/service"
	"plotbook/mocks"
)

func setupDealService() (service.DealService, *mocks.MockProjectRepo) {
	repo := new(mocks.MockProjectRepo)
	return service.NewDealService(repo, zap.NewNop()), repo
}

func sampleDealInput() domain.DealInput {
	return domain.DealInput{
		Identity: domain.LandIdentity{VillageName: "Sanand", SurveyNumbers: "112/2"},
		Measurements: domain.Measurements{
			AreaSqMt:   10000,
			JantriRate: 500,
		},
		Financials: domain.Financials{
			TotalDealPrice:       20_000_000,
			DownPaymentPercent:   10,
			NumberOfInstallments: 4,
			PurchaseDate:         domain.NewDate(2024, time.January, 15),
		},
		Overheads: domain.Overheads{
			StampDutyType:    domain.StampDutyOnDealPrice,
			StampDutyPercent: 4.9,
			ArchitectFee:     100_000,
			PlanPassFee:      50_000,
			NAExpense:        200_000,
			NAPremium:        150_000,
		},
	}
}

func TestDealService_Calculate_FillsBlankDefaults(t *testing.T) {
	svc, _ := setupDealService()
	in := sampleDealInput()
	in.Financials.PurchaseDate = domain.Date{}
	in.Overheads.StampDutyType = ""

	before := domain.Today()
	res := svc.Calculate(&in)
	after := domain.Today()

	assert.False(t, in.Financials.PurchaseDate.IsZero())
	assert.True(t, !in.Financials.PurchaseDate.Before(before) && !after.Before(in.Financials.PurchaseDate))
	assert.Equal(t, domain.StampDutyOnDealPrice, in.Overheads.StampDutyType)
	assert.InDelta(t, 980_000, res.StampDuty, 1e-6)
	require.NotEmpty(t, res.Schedule)
	assert.Equal(t, in.Financials.PurchaseDate, res.Schedule[0].Date)
}

func TestDealService_SaveAsProject(t *testing.T) {
	svc, repo := setupDealService()

	var created *domain.Project
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Project)
			created.ID = 42
		}).
		Return(nil)

	detail, err := svc.SaveAsProject(context.Background(), &service.SaveDealInput{
		ProjectName: "  Green Acres ",
		Deal:        sampleDealInput(),
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Green Acres", created.ProjectName)
	assert.Equal(t, "Sanand", created.VillageName)
	assert.InDelta(t, 21_480_000, created.TotalLandCost, 1e-6)
	assert.True(t, created.HasData())

	assert.Equal(t, int64(42), detail.ID)
	assert.Equal(t, 1796.0, detail.Plotting.LandRate)
	assert.Equal(t, 1796.0, detail.Plotting.CurrentAvgRate)
	assert.NotNil(t, detail.Plotting.PlotSales)
	assert.Empty(t, detail.Plotting.PlotSales)
	require.NotNil(t, detail.Snapshot)
	require.NotNil(t, detail.Snapshot.Result)
	assert.InDelta(t, 2148, detail.Snapshot.Result.CostPerSqMt, 1e-9)
	repo.AssertExpectations(t)
}

func TestDealService_SaveAsProject_NameFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		village string
		want    string
	}{
		{"village", "Sanand", "Sanand Project"},
		{"placeholder", "  ", "Untitled Project"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupDealService()
			var created *domain.Project
			repo.On("Create", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Project) }).
				Return(nil)

			deal := sampleDealInput()
			deal.Identity.VillageName = tt.village
			_, err := svc.SaveAsProject(context.Background(), &service.SaveDealInput{Deal: deal})

			require.NoError(t, err)
			assert.Equal(t, tt.want, created.ProjectName)
		})
	}
}

func TestDealService_SaveAsProject_RepoError(t *testing.T) {
	svc, repo := setupDealService()
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	detail, err := svc.SaveAsProject(context.Background(), &service.SaveDealInput{Deal: sampleDealInput()})

	assert.Nil(t, detail)
	assert.EqualError(t, err, "connection refused")
}
