package calculator_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
)

func sampleDeal() *domain.DealInput {
	return &domain.DealInput{
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

func TestComputeDeal_Aggregates(t *testing.T) {
	res := calculator.ComputeDeal(sampleDeal())

	assert.InDelta(t, 5_000_000, res.TotalJantriValue, 1e-9)
	assert.InDelta(t, 10000/2377.73, res.VighaEquivalent, 1e-9)
	assert.InDelta(t, 980_000, res.StampDuty, 1e-6)
	assert.InDelta(t, 2_000_000, res.DownPayment, 1e-9)
	assert.InDelta(t, 13_000_000, res.InstallmentPool, 1e-9)
	assert.InDelta(t, 3_250_000, res.InstallmentAmount, 1e-9)
	assert.InDelta(t, 500_000, res.TotalOverheads, 1e-9)
	assert.InDelta(t, 21_480_000, res.LandedCost, 1e-6)
	assert.InDelta(t, 2148, res.CostPerSqMt, 1e-9)
	assert.InDelta(t, 20_000_000, res.GrandTotalPayment, 1e-6)
}

func TestComputeDeal_ScheduleOrder(t *testing.T) {
	res := calculator.ComputeDeal(sampleDeal())
	require.Len(t, res.Schedule, 6)

	assert.Equal(t, domain.ScheduleItemToken, res.Schedule[0].Type)
	assert.Equal(t, 1, res.Schedule[0].ID)
	assert.Equal(t, domain.NewDate(2024, time.January, 15), res.Schedule[0].Date)

	wantDates := []domain.Date{
		domain.NewDate(2024, time.April, 14),
		domain.NewDate(2024, time.May, 14),
		domain.NewDate(2024, time.June, 14),
		domain.NewDate(2024, time.July, 14),
	}
	for i, want := range wantDates {
		item := res.Schedule[i+1]
		assert.Equal(t, domain.ScheduleItemInstallment, item.Type)
		assert.Equal(t, i+2, item.ID)
		assert.Equal(t, want, item.Date)
	}

	jantri := res.Schedule[5]
	assert.Equal(t, domain.ScheduleItemJantri, jantri.Type)
	assert.Equal(t, 999, jantri.ID)
	assert.Equal(t, domain.NewDate(2024, time.August, 14), jantri.Date)
	assert.InDelta(t, 5_000_000, jantri.Amount, 1e-9)
}

func TestComputeDeal_JantriValueIsExactProduct(t *testing.T) {
	cases := []struct{ area, rate float64 }{
		{0, 0}, {1, 1}, {1234.56, 789.1}, {0.5, 3}, {99999.99, 12345.67},
	}
	for _, tc := range cases {
		in := &domain.DealInput{Measurements: domain.Measurements{
			AreaSqMt: domain.Number(tc.area), JantriRate: domain.Number(tc.rate),
		}}
		res := calculator.ComputeDeal(in)
		assert.InDelta(t, tc.area*tc.rate, res.TotalJantriValue, 1e-9)
	}
}

func TestComputeDeal_GrandTotalMatchesSchedule(t *testing.T) {
	for n := 0; n <= 24; n++ {
		in := sampleDeal()
		in.Financials.NumberOfInstallments = domain.Number(n)
		res := calculator.ComputeDeal(in)

		var sum float64
		for _, item := range res.Schedule {
			sum += item.Amount
		}
		assert.InDelta(t, sum, res.GrandTotalPayment, 1e-6, "installments=%d", n)
	}
}

func TestComputeDeal_InstallmentDatesStrictlyIncrease(t *testing.T) {
	in := sampleDeal()
	in.Financials.NumberOfInstallments = 36
	res := calculator.ComputeDeal(in)

	var prev domain.Date
	for _, item := range res.Schedule {
		if item.Type != domain.ScheduleItemInstallment {
			continue
		}
		if !prev.IsZero() {
			assert.True(t, prev.Before(item.Date), "%s should be before %s", prev, item.Date)
			assert.Equal(t, prev.AddMonths(1), item.Date)
		}
		prev = item.Date
	}
}

func TestComputeDeal_MonthEndRollover(t *testing.T) {
	in := sampleDeal()
	in.Financials.PurchaseDate = domain.NewDate(2022, time.November, 2)
	in.Financials.NumberOfInstallments = 3
	res := calculator.ComputeDeal(in)

	require.Len(t, res.Schedule, 5)
	// Nov 2 + 90 days lands on Jan 31; a calendar month later overflows February.
	assert.Equal(t, domain.NewDate(2023, time.January, 31), res.Schedule[1].Date)
	assert.Equal(t, domain.NewDate(2023, time.March, 3), res.Schedule[2].Date)
	assert.Equal(t, domain.NewDate(2023, time.April, 3), res.Schedule[3].Date)
	assert.Equal(t, domain.NewDate(2023, time.May, 3), res.Schedule[4].Date)
}

func TestComputeDeal_ZeroInstallments(t *testing.T) {
	in := sampleDeal()
	in.Financials.NumberOfInstallments = 0
	res := calculator.ComputeDeal(in)

	require.Len(t, res.Schedule, 2)
	assert.Equal(t, domain.ScheduleItemToken, res.Schedule[0].Type)
	assert.Equal(t, domain.ScheduleItemJantri, res.Schedule[1].Type)
	assert.Equal(t, domain.NewDate(2024, time.April, 14), res.Schedule[1].Date)
	assert.Zero(t, res.InstallmentAmount)
}

func TestComputeDeal_NegativePoolPassesThrough(t *testing.T) {
	in := &domain.DealInput{
		Measurements: domain.Measurements{AreaSqMt: 10, JantriRate: 100},
		Financials: domain.Financials{
			TotalDealPrice:       1000,
			DownPaymentPercent:   50,
			NumberOfInstallments: 2,
			PurchaseDate:         domain.NewDate(2024, time.June, 1),
		},
	}
	res := calculator.ComputeDeal(in)

	assert.InDelta(t, -500, res.InstallmentPool, 1e-9)
	assert.InDelta(t, -250, res.InstallmentAmount, 1e-9)
	assert.InDelta(t, 1000, res.GrandTotalPayment, 1e-9)
}

func TestComputeDeal_StampDutyOnJantri(t *testing.T) {
	in := &domain.DealInput{
		Measurements: domain.Measurements{AreaSqMt: 100, JantriRate: 1000},
		Financials:   domain.Financials{TotalDealPrice: 500_000},
		Overheads: domain.Overheads{
			StampDutyType:    domain.StampDutyOnJantri,
			StampDutyPercent: 5,
		},
	}
	res := calculator.ComputeDeal(in)
	assert.InDelta(t, 5000, res.StampDuty, 1e-9)
}

func TestComputeDeal_BlankInput(t *testing.T) {
	res := calculator.ComputeDeal(&domain.DealInput{})

	assert.Empty(t, res.Schedule)
	assert.Zero(t, res.GrandTotalPayment)
	assert.Zero(t, res.CostPerSqMt)
}

func TestComputeDeal_ZeroAreaDividesByOne(t *testing.T) {
	in := &domain.DealInput{Financials: domain.Financials{TotalDealPrice: 1000}}
	res := calculator.ComputeDeal(in)
	assert.InDelta(t, 1000, res.CostPerSqMt, 1e-9)
}

func TestComputeDeal_TokenRowOnlyWithPrice(t *testing.T) {
	in := &domain.DealInput{
		Measurements: domain.Measurements{AreaSqMt: 10, JantriRate: 10},
	}
	res := calculator.ComputeDeal(in)
	require.Len(t, res.Schedule, 1)
	assert.Equal(t, domain.ScheduleItemJantri, res.Schedule[0].Type)
}

func TestComputeDeal_FractionalInstallmentCountTruncates(t *testing.T) {
	in := sampleDeal()
	in.Financials.NumberOfInstallments = 3.7
	res := calculator.ComputeDeal(in)

	var installments int
	for _, item := range res.Schedule {
		if item.Type == domain.ScheduleItemInstallment {
			installments++
		}
	}
	assert.Equal(t, 3, installments)
}

func TestTotalRow(t *testing.T) {
	res := calculator.ComputeDeal(sampleDeal())
	row := calculator.TotalRow(res)
	assert.Equal(t, domain.ScheduleItemTotal, row.Type)
	assert.Equal(t, res.GrandTotalPayment, row.Amount)
}

func TestComputeDeal_InstallmentCountIsCapped(t *testing.T) {
	for _, n := range []float64{1e19, 1e9, math.MaxFloat64} {
		in := sampleDeal()
		in.Financials.NumberOfInstallments = domain.Number(n)

		var res *domain.CalculationResult
		require.NotPanics(t, func() { res = calculator.ComputeDeal(in) })

		var installments int
		var sum float64
		for _, item := range res.Schedule {
			sum += item.Amount
			if item.Type == domain.ScheduleItemInstallment {
				installments++
			}
		}
		assert.Equal(t, calculator.MaxInstallments, installments, "installments=%g", n)
		assert.InDelta(t, sum, res.GrandTotalPayment, 1e-6)
	}
}

func TestClampInstallments(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{math.NaN(), 0},
		{2.5, 2.5},
		{600, 600},
		{1e19, calculator.MaxInstallments},
		{math.Inf(1), calculator.MaxInstallments},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calculator.ClampInstallments(tt.in), "in=%g", tt.in)
	}
}
