// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ForecastType distinguishes user-level from category-level forecasts.
type ForecastType string

const (
	ForecastTypeSpending ForecastType = "spending"
	ForecastTypeCategory ForecastType = "category"
)

// ForecastModelStatistical is the only model the engine currently fits.
const ForecastModelStatistical = "statistical"

// DailyPoint is one day's summed expense total for a user. Days without
// spending are absent from the series, not zero-filled.
type DailyPoint struct {
	Date   time.Time
	Amount decimal.Decimal
}

// MonthlyBucket is one calendar month's aggregated expense total.
// Month uses the "YYYY-MM" form.
type MonthlyBucket struct {
	Month string
	Total decimal.Decimal
	Days  int
}

// ForecastPoint is a single predicted month with its confidence band.
// Invariant: Lower <= Predicted <= Upper and all are non-negative.
type ForecastPoint struct {
	Month      string  `json:"month"`
	Predicted  int64   `json:"predicted"`
	Lower      int64   `json:"lower"`
	Upper      int64   `json:"upper"`
	Confidence float64 `json:"confidence"`
}

// AccuracyMetrics reports holdout backtest error for a fitted model.
type AccuracyMetrics struct {
	MAE  int64   `json:"mae"`
	MAPE float64 `json:"mape"`
	RMSE int64   `json:"rmse"`
}

// ForecastResult is a complete, immutable forecast generation. A new result
// supersedes the previous one; nothing mutates a stored result.
type ForecastResult struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Type           ForecastType
	CategoryID     *uuid.UUID
	Forecast       []ForecastPoint
	Metrics        *AccuracyMetrics // nil when history is too short to backtest
	ModelUsed      string
	DataPointsUsed int
	HorizonMonths  int
	GeneratedAt    time.Time
	ValidUntil     time.Time
}

// IsValid reports whether the result is still within its validity window.
func (r *ForecastResult) IsValid(now time.Time) bool {
	return now.Before(r.ValidUntil)
}

// InsufficientData is the structured non-error outcome returned when a user's
// history is too short to fit a model. Callers branch on it; they never see
// an error for short histories.
type InsufficientData struct {
	Reason    string `json:"reason"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}
