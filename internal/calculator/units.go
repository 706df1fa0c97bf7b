// Package calculator holds the deal, plot timeline and rate calculators.
// Every function here is a pure transform of its inputs.
package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// SqMtPerVigha is the area of one vigha in square metres.
	SqMtPerVigha = 2377.73
	// SqMtPerVaar is the area of one vaar (square yard) in square metres.
	SqMtPerVaar = 0.836127
)

// VighaFromSqMt converts square metres to vigha.
func VighaFromSqMt(sqMt float64) float64 {
	return sqMt / SqMtPerVigha
}

// SqMtFromVaar converts vaar to square metres.
func SqMtFromVaar(vaar float64) float64 {
	return vaar * SqMtPerVaar
}

// roundHalfUp rounds to the nearest integer, with halves going up (-2.5 → -2).
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// PerVaarRate converts a per-square-metre rate into a per-vaar rate, rounded
// to two decimals.
func PerVaarRate(perSqMt float64) float64 {
	return decimal.NewFromFloat(perSqMt).Mul(decimal.NewFromFloat(SqMtPerVaar)).Round(2).InexactFloat64()
}
