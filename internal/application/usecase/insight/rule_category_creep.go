package insight

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// categoryCreepRule flags categories whose current-month spend has grown
// noticeably over last month's.
type categoryCreepRule struct{}

func (categoryCreepRule) Name() string { return string(entity.InsightTypeCategoryCreep) }

func (categoryCreepRule) Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error) {
	thisMonthStart := monthStart(rc.Now, 0)
	lastMonthStart := monthStart(rc.Now, -1)
	lastMonthEnd := thisMonthStart.AddDate(0, 0, -1)

	thisMonth, err := rc.Transactions.SumExpensesByCategory(
		ctx, rc.UserID, adapter.DateRange{From: &thisMonthStart},
	)
	if err != nil {
		return nil, err
	}
	lastMonth, err := rc.Transactions.SumExpensesByCategory(
		ctx, rc.UserID, adapter.DateRange{From: &lastMonthStart, To: &lastMonthEnd},
	)
	if err != nil {
		return nil, err
	}

	previousByCategory := make(map[uuid.UUID]decimal.Decimal, len(lastMonth))
	for _, total := range lastMonth {
		previousByCategory[total.CategoryID] = total.Total
	}

	creepRatio := decimal.NewFromFloat(rc.Tuning.CreepRatio)
	insights := make([]*entity.Insight, 0, rc.Tuning.MaxCreepInsights)

	for _, total := range thisMonth {
		previous, ok := previousByCategory[total.CategoryID]
		if !ok || !previous.IsPositive() {
			continue
		}
		if !total.Total.GreaterThan(previous.Mul(creepRatio)) {
			continue
		}

		name := categoryName(ctx, rc, total.CategoryID, "Category")
		increase := percentChange(total.Total, previous)
		categoryID := total.CategoryID

		insight := entity.NewInsight(
			rc.UserID,
			entity.InsightTypeCategoryCreep,
			fmt.Sprintf("%s spending increased", name),
			fmt.Sprintf(
				"Your %s expenses increased by %d%% compared to last month (%s → %s)",
				name, increase, rupees(previous), rupees(total.Total),
			),
			entity.SeverityInfo,
		)
		insight.CategoryID = &categoryID
		insight.MetricValue = total.Total
		insight.MetricContext = map[string]any{
			"current":      total.Total.InexactFloat64(),
			"previous":     previous.InexactFloat64(),
			"increase_pct": increase,
		}

		insights = append(insights, insight)
		if len(insights) == rc.Tuning.MaxCreepInsights {
			break
		}
	}

	return insights, nil
}
