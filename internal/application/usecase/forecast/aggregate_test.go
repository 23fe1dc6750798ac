// Package forecast contains the spending forecast use cases: aggregation,
// trend/seasonality fitting, forecast generation and holdout backtesting.
package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
)

func dailyPoint(year int, month time.Month, day int, amount int64) entity.DailyPoint {
	return entity.DailyPoint{
		Date:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(amount),
	}
}

func TestAggregateMonthly(t *testing.T) {
	t.Run("empty series yields empty slice", func(t *testing.T) {
		buckets := AggregateMonthly(nil)
		if len(buckets) != 0 {
			t.Errorf("expected 0 buckets, got %d", len(buckets))
		}
	})

	t.Run("groups points by calendar month", func(t *testing.T) {
		daily := []entity.DailyPoint{
			dailyPoint(2025, time.January, 5, 100),
			dailyPoint(2025, time.January, 20, 150),
			dailyPoint(2025, time.February, 1, 300),
		}

		buckets := AggregateMonthly(daily)

		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
		if buckets[0].Month != "2025-01" {
			t.Errorf("expected first bucket 2025-01, got %s", buckets[0].Month)
		}
		if !buckets[0].Total.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected January total 250, got %s", buckets[0].Total)
		}
		if buckets[0].Days != 2 {
			t.Errorf("expected 2 days in January bucket, got %d", buckets[0].Days)
		}
		if buckets[1].Month != "2025-02" {
			t.Errorf("expected second bucket 2025-02, got %s", buckets[1].Month)
		}
		if !buckets[1].Total.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected February total 300, got %s", buckets[1].Total)
		}
	})

	t.Run("same month in different years stays separate", func(t *testing.T) {
		daily := []entity.DailyPoint{
			dailyPoint(2024, time.March, 10, 100),
			dailyPoint(2025, time.March, 10, 200),
		}

		buckets := AggregateMonthly(daily)

		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
		if buckets[0].Month != "2024-03" || buckets[1].Month != "2025-03" {
			t.Errorf("expected 2024-03 then 2025-03, got %s then %s", buckets[0].Month, buckets[1].Month)
		}
	})

	t.Run("gap months are absent not zero", func(t *testing.T) {
		daily := []entity.DailyPoint{
			dailyPoint(2025, time.January, 1, 100),
			dailyPoint(2025, time.April, 1, 400),
		}

		buckets := AggregateMonthly(daily)

		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
	})
}
