// Package valueobject contains domain value objects for the SpendLens system.
package valueobject

import "time"

// Tuning gathers the product-level heuristics used by the forecasting engine
// and the insight rules. These values are deliberate domain tuning, not
// derived parameters; they live here so they can be adjusted and tested in
// one place instead of being scattered as literals.
type Tuning struct {
	// Forecasting
	ForecastHorizonMonths  int           // future months per forecast
	MinDailyPoints         int           // gate for a user-level forecast
	MinCategoryDailyPoints int           // gate for a category forecast
	MarginMultiplier       float64       // stddev multiplier for the error band
	ConfidenceBase         float64       // confidence at horizon step 0
	ConfidenceDecay        float64       // confidence lost per horizon step
	ConfidenceFloor        float64       // confidence never drops below this
	FlatBandPercent        float64       // band width for the single-bucket fallback
	FlatConfidence         float64       // confidence for the single-bucket fallback
	SeasonalFallback       map[time.Month]float64
	ForecastValidity       time.Duration // how long a stored forecast is served

	// Backtesting
	MinBacktestPoints   int // daily points required to compute accuracy
	BacktestHoldoutDays int

	// Insight rules
	SpikeRatio              float64 // weekly spend vs two-week average
	SpikeCriticalRatio      float64
	CreepRatio              float64 // category month-over-month growth
	MaxCreepInsights        int
	SavingsRateTarget       float64 // percent of income saved
	BudgetProjectionRatio   float64 // projected total vs budget amount
	MaxBudgetInsights       int
	UnusualMultiple         float64 // transaction vs category average
	UnusualScanLimit        int     // recent transactions scanned
	MaxUnusualInsights      int
	RecurringMinOccurrences int
	MaxRecurringInsights    int
	IncomeDeviation         float64 // fraction vs trailing 3-month average
	DedupWindow             time.Duration
}

// DefaultTuning returns the engine's shipped heuristics.
//
// The seasonal fallbacks encode the festival-season spending pattern
// (Oct/Nov Diwali, December year-end, January slowdown) for months the user's
// own history never covers.
func DefaultTuning() Tuning {
	return Tuning{
		ForecastHorizonMonths:  3,
		MinDailyPoints:         30,
		MinCategoryDailyPoints: 15,
		MarginMultiplier:       1.5,
		ConfidenceBase:         0.95,
		ConfidenceDecay:        0.1,
		ConfidenceFloor:        0.5,
		FlatBandPercent:        0.2,
		FlatConfidence:         0.6,
		SeasonalFallback: map[time.Month]float64{
			time.October:  1.3,
			time.November: 1.3,
			time.December: 1.15,
			time.January:  0.9,
		},
		ForecastValidity: 7 * 24 * time.Hour,

		MinBacktestPoints:   60,
		BacktestHoldoutDays: 30,

		SpikeRatio:              1.5,
		SpikeCriticalRatio:      2.0,
		CreepRatio:              1.2,
		MaxCreepInsights:        3,
		SavingsRateTarget:       25,
		BudgetProjectionRatio:   1.1,
		MaxBudgetInsights:       3,
		UnusualMultiple:         3,
		UnusualScanLimit:        5,
		MaxUnusualInsights:      2,
		RecurringMinOccurrences: 3,
		MaxRecurringInsights:    3,
		IncomeDeviation:         0.15,
		DedupWindow:             24 * time.Hour,
	}
}

// SeasonalFallbackFor returns the fallback multiplier for a calendar month
// that was never observed in the user's history.
func (t Tuning) SeasonalFallbackFor(month time.Month) float64 {
	if f, ok := t.SeasonalFallback[month]; ok {
		return f
	}
	return 1.0
}
