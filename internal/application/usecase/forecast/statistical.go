package forecast

import (
	"math"
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// statisticalForecast produces one ForecastPoint per horizon step from a
// monthly bucket history: linear trend extrapolation, scaled by the seasonal
// factor of the target calendar month, with a variance-derived error band
// that widens with the square root of the horizon distance.
func statisticalForecast(
	buckets []entity.MonthlyBucket,
	horizonMonths int,
	tuning valueobject.Tuning,
	now time.Time,
) []entity.ForecastPoint {
	if len(buckets) < 2 {
		var avg float64
		if len(buckets) == 1 {
			avg = buckets[0].Total.InexactFloat64()
		}
		return flatForecast(avg, horizonMonths, tuning, now)
	}

	totals := monthlyTotals(buckets)
	model := FitTrend(totals)
	factors := SeasonalFactors(buckets, tuning)
	stdDev := math.Sqrt(Variance(totals))
	n := float64(len(totals))

	points := make([]entity.ForecastPoint, 0, horizonMonths)
	for i := 1; i <= horizonMonths; i++ {
		target := now.AddDate(0, i, 0)
		step := float64(i)

		trendValue := model.At(n + step)
		predicted := math.Max(0, math.Round(trendValue*factors[target.Month()]))

		marginOfError := stdDev * tuning.MarginMultiplier * math.Sqrt(step)
		lower := math.Max(0, math.Round(predicted-marginOfError))
		upper := math.Round(predicted + marginOfError)

		confidence := math.Max(
			tuning.ConfidenceFloor,
			tuning.ConfidenceBase-tuning.ConfidenceDecay*step,
		)

		points = append(points, entity.ForecastPoint{
			Month:      target.Format(monthKeyFormat),
			Predicted:  int64(predicted),
			Lower:      int64(lower),
			Upper:      int64(upper),
			Confidence: confidence,
		})
	}

	return points
}

// flatForecast is the degenerate fallback for histories with fewer than two
// monthly buckets: a flat line at the single observed total with a fixed
// percentage band and flat confidence.
func flatForecast(
	baseAmount float64,
	horizonMonths int,
	tuning valueobject.Tuning,
	now time.Time,
) []entity.ForecastPoint {
	predicted := math.Round(baseAmount)

	points := make([]entity.ForecastPoint, 0, horizonMonths)
	for i := 1; i <= horizonMonths; i++ {
		target := now.AddDate(0, i, 0)
		points = append(points, entity.ForecastPoint{
			Month:      target.Format(monthKeyFormat),
			Predicted:  int64(predicted),
			Lower:      int64(math.Round(predicted * (1 - tuning.FlatBandPercent))),
			Upper:      int64(math.Round(predicted * (1 + tuning.FlatBandPercent))),
			Confidence: tuning.FlatConfidence,
		})
	}

	return points
}
