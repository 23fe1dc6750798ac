package forecast

import (
	"math"

	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// calculateAccuracy backtests the trend fit on a holdout window: the most
// recent BacktestHoldoutDays points are withheld, the trend is refit on the
// monthly roll-up of the rest, and the one-step-ahead prediction is compared
// against the actual holdout sum.
//
// Returns nil when the history is too short to backtest. Since only one
// holdout prediction is made, RMSE degenerates to the absolute error; a
// rolling multi-point backtest would change the metric's meaning, so the
// single-point form is kept.
func calculateAccuracy(history []entity.DailyPoint, tuning valueobject.Tuning) *entity.AccuracyMetrics {
	if len(history) < tuning.MinBacktestPoints {
		return nil
	}

	split := len(history) - tuning.BacktestHoldoutDays
	training := history[:split]
	holdout := history[split:]

	buckets := AggregateMonthly(training)
	totals := monthlyTotals(buckets)
	model := FitTrend(totals)

	// One step beyond the training series' end.
	predicted := model.At(float64(len(totals)))

	var actual float64
	for _, p := range holdout {
		actual += p.Amount.InexactFloat64()
	}

	mae := math.Abs(predicted - actual)
	var mape float64
	if actual > 0 {
		mape = mae / actual * 100
	}

	return &entity.AccuracyMetrics{
		MAE:  int64(math.Round(mae)),
		MAPE: math.Round(mape*10) / 10,
		RMSE: int64(math.Round(mae)),
	}
}
