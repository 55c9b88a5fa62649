package engine

import (
	"context"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	// percentages and scores leave the engine with two decimals
	outputPlaces = 2

	// smallest non-zero percentage once rounded
	minPercentage = 0.01

	// loop iterations between two cancellation checks
	checkpointEvery = 256
)

// SafeDivide is the only division guard used by percentage computations.
func SafeDivide(numerator, denominator, def float64) float64 {
	if denominator == 0 {
		return def
	}
	return numerator / denominator
}

// rawPercentage is num/den on the 0..100 scale, unrounded. Tiers and risk
// ranks are decided on it; only the reported value is rounded.
func rawPercentage(num, den int64) float64 {
	if num <= 0 || den <= 0 {
		return 0
	}
	return SafeDivide(float64(num), float64(den), 0) * 100
}

// Percentage returns num/den as a 0..100 value with two decimals. A non-zero
// numerator never rounds down to zero, so a zero percentage always means
// zero errors.
func Percentage(num, den int64) float64 {
	if num <= 0 || den <= 0 {
		return 0
	}
	pct := Round(SafeDivide(float64(num), float64(den), 0)*100, outputPlaces)
	if pct < minPercentage {
		pct = minPercentage
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Round rounds half away from zero. Infinities and NaN pass through.
func Round(x float64, places int32) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func checkpoint(ctx context.Context, i int) error {
	if i%checkpointEvery != 0 {
		return nil
	}
	return ctx.Err()
}
