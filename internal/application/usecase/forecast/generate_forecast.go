package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// storeHitCacheTTL is how long a result served from the durable store stays
// cached; fresh results are cached for their full validity window.
const storeHitCacheTTL = 24 * time.Hour

// GenerateForecastInput represents the input for generating a forecast.
type GenerateForecastInput struct {
	UserID uuid.UUID
	// HorizonMonths is the number of future months to predict.
	// Zero means the tuned default.
	HorizonMonths int
}

// GenerateForecastOutput represents the outcome of a forecast request.
// Exactly one of Result and InsufficientData is set.
type GenerateForecastOutput struct {
	Result           *entity.ForecastResult
	InsufficientData *entity.InsufficientData
}

// GenerateForecastUseCase handles user-level spending forecast generation
// with read-through caching: cache, then unexpired stored result, then a
// fresh fit over the full expense history.
type GenerateForecastUseCase struct {
	transactions adapter.TransactionReader
	forecasts    adapter.ForecastRepository
	cache        adapter.Cache
	tuning       valueobject.Tuning
	now          func() time.Time
}

// NewGenerateForecastUseCase creates a new GenerateForecastUseCase instance.
func NewGenerateForecastUseCase(
	transactions adapter.TransactionReader,
	forecasts adapter.ForecastRepository,
	cache adapter.Cache,
	tuning valueobject.Tuning,
) *GenerateForecastUseCase {
	return &GenerateForecastUseCase{
		transactions: transactions,
		forecasts:    forecasts,
		cache:        cache,
		tuning:       tuning,
		now:          time.Now,
	}
}

// Execute generates (or serves) the spending forecast for a user. The call is
// idempotent within the validity window: repeated calls return the same
// stored result until it expires.
func (uc *GenerateForecastUseCase) Execute(
	ctx context.Context,
	input GenerateForecastInput,
) (*GenerateForecastOutput, error) {
	if input.HorizonMonths < 0 {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeInvalidForecastHorizon,
			"horizon_months must be positive",
			domainerror.ErrInvalidForecastHorizon,
		)
	}
	horizon := input.HorizonMonths
	if horizon == 0 {
		horizon = uc.tuning.ForecastHorizonMonths
	}

	cacheKey := spendingForecastCacheKey(input.UserID)

	// Cache failures degrade to recomputation, never to request failure.
	var cached entity.ForecastResult
	found, err := uc.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		slog.Warn("forecast cache read failed, treating as miss", "user_id", input.UserID, "error", err)
	} else if found {
		return &GenerateForecastOutput{Result: &cached}, nil
	}

	now := uc.now().UTC()

	// A store read failure is fatal: we cannot tell whether a valid result exists.
	existing, err := uc.forecasts.FindLatestValid(ctx, input.UserID, entity.ForecastTypeSpending, now)
	if err != nil {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeForecastStorage,
			"failed to look up stored forecast",
			fmt.Errorf("%w: %w", domainerror.ErrForecastStorageUnavailable, err),
		)
	}
	if existing != nil {
		uc.cacheResult(ctx, cacheKey, existing, storeHitCacheTTL)
		return &GenerateForecastOutput{Result: existing}, nil
	}

	history, err := uc.transactions.ListDailyExpenseTotals(ctx, input.UserID, nil, adapter.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to load expense history: %w", err)
	}

	if len(history) < uc.tuning.MinDailyPoints {
		return &GenerateForecastOutput{
			InsufficientData: &entity.InsufficientData{
				Reason:    "need more transaction history for forecasting",
				Required:  uc.tuning.MinDailyPoints,
				Available: len(history),
			},
		}, nil
	}

	buckets := AggregateMonthly(history)
	result := &entity.ForecastResult{
		ID:             uuid.New(),
		UserID:         input.UserID,
		Type:           entity.ForecastTypeSpending,
		Forecast:       statisticalForecast(buckets, horizon, uc.tuning, now),
		Metrics:        calculateAccuracy(history, uc.tuning),
		ModelUsed:      entity.ForecastModelStatistical,
		DataPointsUsed: len(history),
		HorizonMonths:  horizon,
		GeneratedAt:    now,
		ValidUntil:     now.Add(uc.tuning.ForecastValidity),
	}

	// The result is complete in memory; a failed write is logged and the
	// computed result is still returned rather than discarded.
	if err := uc.forecasts.Create(ctx, result); err != nil {
		slog.Error("failed to persist forecast result", "user_id", input.UserID, "error", err)
	}
	uc.cacheResult(ctx, cacheKey, result, uc.tuning.ForecastValidity)

	return &GenerateForecastOutput{Result: result}, nil
}

func (uc *GenerateForecastUseCase) cacheResult(
	ctx context.Context,
	key string,
	result *entity.ForecastResult,
	ttl time.Duration,
) {
	if err := uc.cache.Set(ctx, key, result, ttl); err != nil {
		slog.Warn("forecast cache write failed", "user_id", result.UserID, "error", err)
	}
}

func spendingForecastCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("forecast:%s:spending", userID)
}
