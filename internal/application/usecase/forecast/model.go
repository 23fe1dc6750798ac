package forecast

import (
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// TrendModel holds a fitted linear trend over monthly totals.
//
// The fit is position-indexed: consecutive present months are treated as
// adjacent time steps, so calendar gaps (months with no logged spending)
// compress rather than interpolate. Known limitation, kept for stable
// behavior across the stored forecast history.
type TrendModel struct {
	Slope     float64
	Intercept float64
}

// FitTrend fits an ordinary least squares line over (index, value) pairs with
// the index starting at 0. Fewer than two points degenerate to a flat line at
// the single value (or zero).
func FitTrend(values []float64) TrendModel {
	n := len(values)
	if n == 0 {
		return TrendModel{}
	}
	if n == 1 {
		return TrendModel{Intercept: values[0]}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	nf := float64(n)
	var slope float64
	if denom := nf*sumX2 - sumX*sumX; denom != 0 {
		slope = (nf*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / nf

	return TrendModel{Slope: slope, Intercept: intercept}
}

// At evaluates the trend line at the given time index.
func (m TrendModel) At(index float64) float64 {
	return m.Intercept + m.Slope*index
}

// SeasonalFactors computes a per-calendar-month multiplier table from the
// bucket history: the average total for that month across all observed years
// over the global average. Months never observed fall back to the tuned
// festival-season heuristics.
func SeasonalFactors(buckets []entity.MonthlyBucket, tuning valueobject.Tuning) map[time.Month]float64 {
	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	var global float64

	for _, b := range buckets {
		parsed, err := time.Parse(monthKeyFormat, b.Month)
		if err != nil {
			continue
		}
		total := b.Total.InexactFloat64()
		sums[parsed.Month()] += total
		counts[parsed.Month()]++
		global += total
	}

	var globalAvg float64
	if len(buckets) > 0 {
		globalAvg = global / float64(len(buckets))
	}

	factors := make(map[time.Month]float64, 12)
	for month := time.January; month <= time.December; month++ {
		if counts[month] > 0 && globalAvg != 0 {
			factors[month] = (sums[month] / float64(counts[month])) / globalAvg
		} else {
			factors[month] = tuning.SeasonalFallbackFor(month)
		}
	}

	return factors
}

// Variance computes the population variance of the values.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return sq / float64(len(values))
}
