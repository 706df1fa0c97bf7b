package calculator

import (
	"github.com/shopspring/decimal"

	"plotbook/internal/domain"
)

// WeightedAverageRate is Σ(rate × area) / Σ area over all plots, rounded to
// two decimals. It is 0 when the plots have no area.
func WeightedAverageRate(plots []domain.Plot) float64 {
	weighted := decimal.Zero
	area := decimal.Zero
	for i := range plots {
		a := decimal.NewFromFloat(plots[i].AreaVaar)
		weighted = weighted.Add(decimal.NewFromFloat(plots[i].CustomLandRate).Mul(a))
		area = area.Add(a)
	}
	if area.IsZero() {
		return 0
	}
	return weighted.DivRound(area, 2).InexactFloat64()
}
