package insight

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// defaultInsightLimit bounds an unfiltered insight listing.
const defaultInsightLimit = 20

// insightListCacheTTL is how long the unfiltered listing stays cached; it is
// invalidated eagerly on generation anyway.
const insightListCacheTTL = time.Hour

// GetInsightsInput represents the input for listing insights.
type GetInsightsInput struct {
	UserID     uuid.UUID
	Type       *entity.InsightType
	Severity   *entity.InsightSeverity
	UnreadOnly bool
	Limit      int
}

// GetInsightsOutput represents the result of listing insights.
type GetInsightsOutput struct {
	Insights []*entity.Insight
}

// GetInsightsUseCase handles the read-only insight listing. The unfiltered
// default listing is served through the cache; filtered reads go straight to
// the store.
type GetInsightsUseCase struct {
	insights adapter.InsightRepository
	cache    adapter.Cache
}

// NewGetInsightsUseCase creates a new GetInsightsUseCase instance.
func NewGetInsightsUseCase(insights adapter.InsightRepository, cache adapter.Cache) *GetInsightsUseCase {
	return &GetInsightsUseCase{
		insights: insights,
		cache:    cache,
	}
}

// Execute lists non-dismissed insights for the user, newest first.
func (uc *GetInsightsUseCase) Execute(
	ctx context.Context,
	input GetInsightsInput,
) (*GetInsightsOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultInsightLimit
	}

	unfiltered := input.Type == nil && input.Severity == nil && !input.UnreadOnly && limit == defaultInsightLimit
	cacheKey := insightListCacheKey(input.UserID)

	if unfiltered {
		var cached []*entity.Insight
		found, err := uc.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			slog.Warn("insight cache read failed, treating as miss", "user_id", input.UserID, "error", err)
		} else if found {
			return &GetInsightsOutput{Insights: cached}, nil
		}
	}

	insights, err := uc.insights.FindByFilter(ctx, adapter.InsightFilter{
		UserID:     input.UserID,
		Type:       input.Type,
		Severity:   input.Severity,
		UnreadOnly: input.UnreadOnly,
		Limit:      limit,
	})
	if err != nil {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInsightStorage,
			"failed to load insights",
			err,
		)
	}

	if unfiltered {
		if err := uc.cache.Set(ctx, cacheKey, insights, insightListCacheTTL); err != nil {
			slog.Warn("insight cache write failed", "user_id", input.UserID, "error", err)
		}
	}

	return &GetInsightsOutput{Insights: insights}, nil
}

func (uc *GetInsightsUseCase) validateInput(input GetInsightsInput) error {
	if input.Type != nil {
		switch *input.Type {
		case entity.InsightTypeSpendingSpike,
			entity.InsightTypeCategoryCreep,
			entity.InsightTypeSavingsMilestone,
			entity.InsightTypeBudgetProjection,
			entity.InsightTypeUnusualTransaction,
			entity.InsightTypeRecurringDetected,
			entity.InsightTypeIncomeChange:
		default:
			return domainerror.NewInsightError(
				domainerror.ErrCodeInvalidInsightType,
				"unknown insight type",
				domainerror.ErrInvalidInsightType,
			)
		}
	}

	if input.Severity != nil {
		switch *input.Severity {
		case entity.SeverityInfo, entity.SeverityWarning, entity.SeverityCritical:
		default:
			return domainerror.NewInsightError(
				domainerror.ErrCodeInvalidInsightSeverity,
				"severity must be: info, warning, or critical",
				domainerror.ErrInvalidInsightSeverity,
			)
		}
	}

	return nil
}
