package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// GetCategoryForecastInput represents the input for a category forecast.
type GetCategoryForecastInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// GetCategoryForecastOutput represents the outcome of a category forecast
// request. Exactly one of Result and InsufficientData is set.
type GetCategoryForecastOutput struct {
	Result           *entity.ForecastResult
	InsufficientData *entity.InsufficientData
}

// GetCategoryForecastUseCase runs the same statistical forecast scoped to a
// single category. Category forecasts are cached but not persisted; histories
// per category are small enough that recomputation after a cache miss is cheap.
type GetCategoryForecastUseCase struct {
	transactions adapter.TransactionReader
	categories   adapter.CategoryRepository
	cache        adapter.Cache
	tuning       valueobject.Tuning
	now          func() time.Time
}

// NewGetCategoryForecastUseCase creates a new GetCategoryForecastUseCase instance.
func NewGetCategoryForecastUseCase(
	transactions adapter.TransactionReader,
	categories adapter.CategoryRepository,
	cache adapter.Cache,
	tuning valueobject.Tuning,
) *GetCategoryForecastUseCase {
	return &GetCategoryForecastUseCase{
		transactions: transactions,
		categories:   categories,
		cache:        cache,
		tuning:       tuning,
		now:          time.Now,
	}
}

// Execute generates (or serves) the forecast for one category of a user's spending.
func (uc *GetCategoryForecastUseCase) Execute(
	ctx context.Context,
	input GetCategoryForecastInput,
) (*GetCategoryForecastOutput, error) {
	category, err := uc.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFoundForForecast) {
			return nil, domainerror.NewForecastError(
				domainerror.ErrCodeForecastCategoryMissing,
				"category not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category.UserID != input.UserID {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeForecastCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedForForecast,
		)
	}

	cacheKey := fmt.Sprintf("forecast:%s:category:%s", input.UserID, input.CategoryID)

	var cached entity.ForecastResult
	found, err := uc.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		slog.Warn("category forecast cache read failed, treating as miss",
			"user_id", input.UserID, "category_id", input.CategoryID, "error", err)
	} else if found {
		return &GetCategoryForecastOutput{Result: &cached}, nil
	}

	categoryID := input.CategoryID
	history, err := uc.transactions.ListDailyExpenseTotals(ctx, input.UserID, &categoryID, adapter.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to load category expense history: %w", err)
	}

	if len(history) < uc.tuning.MinCategoryDailyPoints {
		return &GetCategoryForecastOutput{
			InsufficientData: &entity.InsufficientData{
				Reason:    "need more transaction history in this category",
				Required:  uc.tuning.MinCategoryDailyPoints,
				Available: len(history),
			},
		}, nil
	}

	now := uc.now().UTC()
	buckets := AggregateMonthly(history)
	result := &entity.ForecastResult{
		ID:             uuid.New(),
		UserID:         input.UserID,
		Type:           entity.ForecastTypeCategory,
		CategoryID:     &categoryID,
		Forecast:       statisticalForecast(buckets, uc.tuning.ForecastHorizonMonths, uc.tuning, now),
		Metrics:        calculateAccuracy(history, uc.tuning),
		ModelUsed:      entity.ForecastModelStatistical,
		DataPointsUsed: len(history),
		HorizonMonths:  uc.tuning.ForecastHorizonMonths,
		GeneratedAt:    now,
		ValidUntil:     now.Add(uc.tuning.ForecastValidity),
	}

	if err := uc.cache.Set(ctx, cacheKey, result, uc.tuning.ForecastValidity); err != nil {
		slog.Warn("category forecast cache write failed",
			"user_id", input.UserID, "category_id", input.CategoryID, "error", err)
	}

	return &GetCategoryForecastOutput{Result: result}, nil
}
