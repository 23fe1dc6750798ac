// Package forecast contains the spending forecast use cases: aggregation,
// trend/seasonality fitting, forecast generation and holdout backtesting.
package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
)

// monthKeyFormat is the "YYYY-MM" bucket key layout.
const monthKeyFormat = "2006-01"

// AggregateMonthly rolls a time-ordered daily series up into monthly buckets.
// Each point lands in exactly one bucket keyed by its calendar month; buckets
// come out in first-seen order, which is ascending because the input is
// sorted. An empty series yields an empty slice.
func AggregateMonthly(daily []entity.DailyPoint) []entity.MonthlyBucket {
	buckets := make([]entity.MonthlyBucket, 0, len(daily)/28+1)
	index := make(map[string]int)

	for _, point := range daily {
		key := point.Date.Format(monthKeyFormat)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, entity.MonthlyBucket{Month: key, Total: decimal.Zero})
		}
		buckets[i].Total = buckets[i].Total.Add(point.Amount)
		buckets[i].Days++
	}

	return buckets
}

// monthlyTotals extracts bucket totals as floats for the statistical fit.
func monthlyTotals(buckets []entity.MonthlyBucket) []float64 {
	totals := make([]float64, len(buckets))
	for i, b := range buckets {
		totals[i] = b.Total.InexactFloat64()
	}
	return totals
}
