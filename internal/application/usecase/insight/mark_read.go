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

// MarkReadInput represents the input for marking an insight as read.
type MarkReadInput struct {
	InsightID uuid.UUID
	UserID    uuid.UUID
}

// MarkReadOutput represents the result of marking an insight as read.
type MarkReadOutput struct {
	Insight *entity.Insight
}

// MarkReadUseCase handles the one-way read transition on an insight.
// The operation is idempotent: marking an already-read insight is a no-op.
type MarkReadUseCase struct {
	insights adapter.InsightRepository
	cache    adapter.Cache
	now      func() time.Time
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(insights adapter.InsightRepository, cache adapter.Cache) *MarkReadUseCase {
	return &MarkReadUseCase{
		insights: insights,
		cache:    cache,
		now:      time.Now,
	}
}

// Execute marks the insight as read, scoped to the owning user.
func (uc *MarkReadUseCase) Execute(ctx context.Context, input MarkReadInput) (*MarkReadOutput, error) {
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

	if !insight.IsRead {
		insight.MarkRead(uc.now().UTC())
		if err := uc.insights.Update(ctx, insight); err != nil {
			return nil, fmt.Errorf("failed to update insight: %w", err)
		}
		uc.invalidateList(ctx, input.UserID)
	}

	return &MarkReadOutput{Insight: insight}, nil
}

func (uc *MarkReadUseCase) invalidateList(ctx context.Context, userID uuid.UUID) {
	if err := uc.cache.Del(ctx, insightListCacheKey(userID)); err != nil {
		slog.Warn("insight cache invalidation failed", "user_id", userID, "error", err)
	}
}
