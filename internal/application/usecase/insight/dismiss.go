package insight

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
)

// DismissInput represents the input for dismissing an insight.
type DismissInput struct {
	InsightID uuid.UUID
	UserID    uuid.UUID
}

// DismissOutput represents the result of dismissing an insight.
type DismissOutput struct {
	Insight *entity.Insight
}

// DismissUseCase handles the one-way dismissed transition on an insight.
// The operation is idempotent: dismissing an already-dismissed insight is a no-op.
type DismissUseCase struct {
	insights adapter.InsightRepository
	cache    adapter.Cache
	now      func() time.Time
}

// NewDismissUseCase creates a new DismissUseCase instance.
func NewDismissUseCase(insights adapter.InsightRepository, cache adapter.Cache) *DismissUseCase {
	return &DismissUseCase{
		insights: insights,
		cache:    cache,
		now:      time.Now,
	}
}

// Execute dismisses the insight, scoped to the owning user.
func (uc *DismissUseCase) Execute(ctx context.Context, input DismissInput) (*DismissOutput, error) {
	insight, err := uc.insights.FindByIDAndUser(ctx, input.InsightID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInsightNotFound) {
			return nil, domainerror.NewInsightError(
				domainerror.ErrCodeInsightNotFound,
				"insight not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to load insight: %w", err)
	}

	if !insight.IsDismissed {
		insight.Dismiss(uc.now().UTC())
		if err := uc.insights.Update(ctx, insight); err != nil {
			return nil, fmt.Errorf("failed to update insight: %w", err)
		}
		uc.invalidateList(ctx, input.UserID)
	}

	return &DismissOutput{Insight: insight}, nil
}

func (uc *DismissUseCase) invalidateList(ctx context.Context, userID uuid.UUID) {
	if err := uc.cache.Del(ctx, insightListCacheKey(userID)); err != nil {
		slog.Warn("insight cache invalidation failed", "user_id", userID, "error", err)
	}
}
