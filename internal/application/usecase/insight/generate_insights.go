package insight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// GenerateInsightsInput represents the input for generating insights.
type GenerateInsightsInput struct {
	UserID uuid.UUID
}

// GenerateInsightsOutput holds the insights newly persisted by this call.
// Drafts suppressed by the dedup window are not included.
type GenerateInsightsOutput struct {
	Insights []*entity.Insight
}

// GenerateInsightsUseCase runs the full rule battery against a user's data
// and persists the results with advisory deduplication: an equivalent insight
// (same user, type, title) generated within the dedup window suppresses the
// new one. Concurrent runs can both pass the check and double-insert; that is
// an accepted bounded inconsistency, not corruption.
type GenerateInsightsUseCase struct {
	rules        []Rule
	insights     adapter.InsightRepository
	transactions adapter.TransactionReader
	budgets      adapter.BudgetRepository
	categories   adapter.CategoryRepository
	cache        adapter.Cache
	tuning       valueobject.Tuning
	now          func() time.Time
}

// NewGenerateInsightsUseCase creates a new GenerateInsightsUseCase instance.
func NewGenerateInsightsUseCase(
	rules []Rule,
	insights adapter.InsightRepository,
	transactions adapter.TransactionReader,
	budgets adapter.BudgetRepository,
	categories adapter.CategoryRepository,
	cache adapter.Cache,
	tuning valueobject.Tuning,
) *GenerateInsightsUseCase {
	return &GenerateInsightsUseCase{
		rules:        rules,
		insights:     insights,
		transactions: transactions,
		budgets:      budgets,
		categories:   categories,
		cache:        cache,
		tuning:       tuning,
		now:          time.Now,
	}
}

// Execute evaluates every rule and persists the surviving drafts. A failing
// rule is logged and skipped without aborting its siblings; a failed insert
// is logged and the computed insight is still returned rather than discarded.
func (uc *GenerateInsightsUseCase) Execute(
	ctx context.Context,
	input GenerateInsightsInput,
) (*GenerateInsightsOutput, error) {
	now := uc.now().UTC()
	rc := RuleContext{
		UserID:       input.UserID,
		Now:          now,
		Transactions: uc.transactions,
		Budgets:      uc.budgets,
		Categories:   uc.categories,
		Tuning:       uc.tuning,
	}

	var drafts []*entity.Insight
	for _, rule := range uc.rules {
		results, err := rule.Evaluate(ctx, rc)
		if err != nil {
			slog.Error("insight rule failed, skipping",
				"rule", rule.Name(), "user_id", input.UserID, "error", err)
			continue
		}
		drafts = append(drafts, results...)
	}

	dedupSince := now.Add(-uc.tuning.DedupWindow)
	created := make([]*entity.Insight, 0, len(drafts))

	for _, draft := range drafts {
		exists, err := uc.insights.ExistsRecent(ctx, input.UserID, draft.Type, draft.Title, dedupSince)
		if err != nil {
			// The dedup check is advisory; an unreachable check does not
			// block the insert.
			slog.Warn("insight dedup check failed, inserting anyway",
				"type", draft.Type, "user_id", input.UserID, "error", err)
		} else if exists {
			continue
		}

		draft.GeneratedAt = now
		if err := uc.insights.Create(ctx, draft); err != nil {
			slog.Error("failed to persist insight",
				"type", draft.Type, "user_id", input.UserID, "error", err)
		}
		created = append(created, draft)
	}

	if err := uc.cache.Del(ctx, insightListCacheKey(input.UserID)); err != nil {
		slog.Warn("insight cache invalidation failed", "user_id", input.UserID, "error", err)
	}

	return &GenerateInsightsOutput{Insights: created}, nil
}

func insightListCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("insights:%s", userID)
}
