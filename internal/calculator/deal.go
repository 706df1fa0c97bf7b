package calculator

import (
	"fmt"
	"math"

	"plotbook/internal/domain"
)

const (
	// firstInstallmentDelayDays is the gap between purchase and the first installment.
	firstInstallmentDelayDays = 90

	tokenItemID  = 1
	jantriItemID = 999
)

// ComputeDeal derives stamp duty, down payment, the dated payment schedule
// and the aggregate cost metrics of a land deal. Blank inputs are zero.
func ComputeDeal(in *domain.DealInput) *domain.CalculationResult {
	area := in.Measurements.AreaSqMt.Float()
	dealPrice := in.Financials.TotalDealPrice.Float()
	n := installmentCount(in.Financials.NumberOfInstallments)
	purchase := in.Financials.PurchaseDate

	res := &domain.CalculationResult{
		VighaEquivalent:  VighaFromSqMt(area),
		TotalJantriValue: area * in.Measurements.JantriRate.Float(),
	}

	base := dealPrice
	if in.Overheads.StampDutyType == domain.StampDutyOnJantri {
		base = res.TotalJantriValue
	}
	res.StampDuty = base * in.Overheads.StampDutyPercent.Float() / 100
	res.DownPayment = dealPrice * in.Financials.DownPaymentPercent.Float() / 100

	// Not clamped: a down payment plus jantri above the deal price yields
	// negative installments.
	res.InstallmentPool = dealPrice - res.DownPayment - res.TotalJantriValue
	if n > 0 {
		res.InstallmentAmount = res.InstallmentPool / float64(n)
	}

	res.Schedule = make([]domain.PaymentScheduleItem, 0, n+2)
	if dealPrice > 0 || res.DownPayment > 0 {
		res.Schedule = append(res.Schedule, domain.PaymentScheduleItem{
			ID:          tokenItemID,
			Date:        purchase,
			Description: "Token / Down Payment",
			Amount:      res.DownPayment,
			Type:        domain.ScheduleItemToken,
		})
	}

	due := purchase.AddDays(firstInstallmentDelayDays)
	for i := 1; i <= n; i++ {
		res.Schedule = append(res.Schedule, domain.PaymentScheduleItem{
			ID:          i + 1,
			Date:        due,
			Description: fmt.Sprintf("Installment %d", i),
			Amount:      res.InstallmentAmount,
			Type:        domain.ScheduleItemInstallment,
		})
		due = due.AddMonths(1)
	}

	if res.TotalJantriValue > 0 {
		res.Schedule = append(res.Schedule, domain.PaymentScheduleItem{
			ID:          jantriItemID,
			Date:        due,
			Description: "Jantri Payment",
			Amount:      res.TotalJantriValue,
			Type:        domain.ScheduleItemJantri,
		})
	}

	for _, item := range res.Schedule {
		res.GrandTotalPayment += item.Amount
	}

	o := in.Overheads
	res.TotalOverheads = o.ArchitectFee.Float() + o.PlanPassFee.Float() + o.NAExpense.Float() + o.NAPremium.Float()
	res.LandedCost = dealPrice + res.StampDuty + res.TotalOverheads
	// A zero area divides by 1 rather than signalling an error.
	res.CostPerSqMt = res.LandedCost / math.Max(area, 1)

	return res
}

// MaxInstallments is the most installments a deal or timeline schedules.
// Larger requested counts are clamped to it.
const MaxInstallments = 600

// ClampInstallments bounds a requested installment count to
// [0, MaxInstallments]. Fractions are kept.
func ClampInstallments(n float64) float64 {
	if !(n > 0) {
		return 0
	}
	return math.Min(n, MaxInstallments)
}

// installmentCount truncates the requested count to an integer in
// [0, MaxInstallments].
func installmentCount(n domain.Number) int {
	return int(math.Trunc(ClampInstallments(n.Float())))
}

// TotalRow builds the trailing totals line that renderers append to a schedule.
func TotalRow(res *domain.CalculationResult) domain.PaymentScheduleItem {
	return domain.PaymentScheduleItem{
		Description: "Grand Total",
		Amount:      res.GrandTotalPayment,
		Type:        domain.ScheduleItemTotal,
	}
}
