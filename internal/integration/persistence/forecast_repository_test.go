package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

func seedForecastResult(userID uuid.UUID, generatedAt time.Time, validUntil time.Time) *entity.ForecastResult {
	return &entity.ForecastResult{
		ID:     uuid.New(),
		UserID: userID,
		Type:   entity.ForecastTypeSpending,
		Forecast: []entity.ForecastPoint{
			{Month: "2025-07", Predicted: 5000, Lower: 4200, Upper: 5800, Confidence: 0.85},
			{Month: "2025-08", Predicted: 5200, Lower: 4100, Upper: 6300, Confidence: 0.75},
		},
		Metrics:        &entity.AccuracyMetrics{MAE: 300, MAPE: 6.1, RMSE: 340},
		ModelUsed:      entity.ForecastModelStatistical,
		DataPointsUsed: 90,
		HorizonMonths:  2,
		GeneratedAt:    generatedAt,
		ValidUntil:     validUntil,
	}
}

func TestForecastRepository_FindLatestValid(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, time.June, 21, 12, 0, 0, 0, time.UTC)

	t.Run("round-trips points and metrics", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewForecastRepository(db)

		stored := seedForecastResult(userID, now.Add(-time.Hour), now.Add(6*24*time.Hour))
		if err := repo.Create(ctx, stored); err != nil {
			t.Fatalf("failed to create forecast result: %v", err)
		}

		found, err := repo.FindLatestValid(ctx, userID, entity.ForecastTypeSpending, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found == nil {
			t.Fatal("expected a valid result")
		}
		if len(found.Forecast) != 2 {
			t.Fatalf("expected 2 forecast points, got %d", len(found.Forecast))
		}
		if found.Forecast[0].Month != "2025-07" || found.Forecast[0].Predicted != 5000 {
			t.Errorf("unexpected first point: %+v", found.Forecast[0])
		}
		if found.Metrics == nil || found.Metrics.MAPE != 6.1 {
			t.Errorf("expected metrics to round-trip, got %+v", found.Metrics)
		}
		if found.DataPointsUsed != 90 || found.HorizonMonths != 2 {
			t.Errorf("unexpected result fields: %+v", found)
		}
	})

	t.Run("expired results are invisible", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewForecastRepository(db)

		expired := seedForecastResult(userID, now.Add(-8*24*time.Hour), now.Add(-24*time.Hour))
		if err := repo.Create(ctx, expired); err != nil {
			t.Fatalf("failed to create forecast result: %v", err)
		}

		found, err := repo.FindLatestValid(ctx, userID, entity.ForecastTypeSpending, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != nil {
			t.Errorf("expected no valid result, got %+v", found)
		}
	})

	t.Run("newest valid result wins", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewForecastRepository(db)

		older := seedForecastResult(userID, now.Add(-3*time.Hour), now.Add(4*24*time.Hour))
		newer := seedForecastResult(userID, now.Add(-time.Hour), now.Add(6*24*time.Hour))
		for _, result := range []*entity.ForecastResult{older, newer} {
			if err := repo.Create(ctx, result); err != nil {
				t.Fatalf("failed to create forecast result: %v", err)
			}
		}

		found, err := repo.FindLatestValid(ctx, userID, entity.ForecastTypeSpending, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found == nil || found.ID != newer.ID {
			t.Error("expected the newest valid result")
		}
	})

	t.Run("nil metrics survive the round-trip", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewForecastRepository(db)

		stored := seedForecastResult(userID, now.Add(-time.Hour), now.Add(6*24*time.Hour))
		stored.Metrics = nil
		if err := repo.Create(ctx, stored); err != nil {
			t.Fatalf("failed to create forecast result: %v", err)
		}

		found, err := repo.FindLatestValid(ctx, userID, entity.ForecastTypeSpending, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found == nil {
			t.Fatal("expected a valid result")
		}
		if found.Metrics != nil {
			t.Errorf("expected nil metrics, got %+v", found.Metrics)
		}
	})
}
