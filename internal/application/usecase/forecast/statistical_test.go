package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

func TestStatisticalForecast(t *testing.T) {
	tuning := valueobject.DefaultTuning()
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	bucket := func(month string, total int64) entity.MonthlyBucket {
		return entity.MonthlyBucket{Month: month, Total: decimal.NewFromInt(total)}
	}

	history := []entity.MonthlyBucket{
		bucket("2025-02", 4000),
		bucket("2025-03", 4500),
		bucket("2025-04", 5200),
		bucket("2025-05", 4800),
	}

	t.Run("produces one point per horizon month", func(t *testing.T) {
		points := statisticalForecast(history, 3, tuning, now)
		if len(points) != 3 {
			t.Fatalf("expected 3 points, got %d", len(points))
		}
		if points[0].Month != "2025-07" {
			t.Errorf("expected first month 2025-07, got %s", points[0].Month)
		}
		if points[2].Month != "2025-09" {
			t.Errorf("expected last month 2025-09, got %s", points[2].Month)
		}
	})

	t.Run("bands contain the prediction and stay non-negative", func(t *testing.T) {
		points := statisticalForecast(history, 6, tuning, now)
		for _, p := range points {
			if p.Lower > p.Predicted || p.Predicted > p.Upper {
				t.Errorf("month %s: band [%d, %d] does not contain prediction %d",
					p.Month, p.Lower, p.Upper, p.Predicted)
			}
			if p.Lower < 0 || p.Predicted < 0 {
				t.Errorf("month %s: negative values lower=%d predicted=%d", p.Month, p.Lower, p.Predicted)
			}
		}
	})

	t.Run("bands widen with horizon distance", func(t *testing.T) {
		points := statisticalForecast(history, 3, tuning, now)
		prev := points[0].Upper - points[0].Lower
		for _, p := range points[1:] {
			width := p.Upper - p.Lower
			if width < prev {
				t.Errorf("month %s: band width %d narrower than previous %d", p.Month, width, prev)
			}
			prev = width
		}
	})

	t.Run("confidence decays and floors", func(t *testing.T) {
		points := statisticalForecast(history, 8, tuning, now)

		if !almostEqual(points[0].Confidence, 0.85) {
			t.Errorf("expected first confidence 0.85, got %f", points[0].Confidence)
		}
		if !almostEqual(points[1].Confidence, 0.75) {
			t.Errorf("expected second confidence 0.75, got %f", points[1].Confidence)
		}
		// From step 5 onward the floor holds.
		for _, p := range points[4:] {
			if !almostEqual(p.Confidence, 0.5) {
				t.Errorf("month %s: expected floored confidence 0.5, got %f", p.Month, p.Confidence)
			}
		}
	})

	t.Run("steep downward trend clamps at zero", func(t *testing.T) {
		declining := []entity.MonthlyBucket{
			bucket("2025-01", 9000),
			bucket("2025-02", 6000),
			bucket("2025-03", 3000),
			bucket("2025-04", 500),
		}

		points := statisticalForecast(declining, 4, tuning, now)
		for _, p := range points {
			if p.Predicted < 0 || p.Lower < 0 {
				t.Errorf("month %s: expected clamped values, got predicted=%d lower=%d",
					p.Month, p.Predicted, p.Lower)
			}
		}
		last := points[len(points)-1]
		if last.Predicted != 0 {
			t.Errorf("expected far prediction clamped to 0, got %d", last.Predicted)
		}
	})

	t.Run("single bucket falls back to flat band", func(t *testing.T) {
		points := statisticalForecast([]entity.MonthlyBucket{bucket("2025-05", 5000)}, 3, tuning, now)

		if len(points) != 3 {
			t.Fatalf("expected 3 points, got %d", len(points))
		}
		for _, p := range points {
			if p.Predicted != 5000 {
				t.Errorf("month %s: expected flat prediction 5000, got %d", p.Month, p.Predicted)
			}
			if p.Lower != 4000 || p.Upper != 6000 {
				t.Errorf("month %s: expected band [4000, 6000], got [%d, %d]", p.Month, p.Lower, p.Upper)
			}
			if !almostEqual(p.Confidence, 0.6) {
				t.Errorf("month %s: expected confidence 0.6, got %f", p.Month, p.Confidence)
			}
		}
	})

	t.Run("empty history yields zero flat forecast", func(t *testing.T) {
		points := statisticalForecast(nil, 2, tuning, now)
		for _, p := range points {
			if p.Predicted != 0 || p.Lower != 0 || p.Upper != 0 {
				t.Errorf("month %s: expected all-zero point, got %+v", p.Month, p)
			}
		}
	})
}
