package insight

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// budgetProjectionRule extrapolates the current burn rate of each active
// budget to its full period and warns when the projection clears the budget
// while spending is still under it. It never fires once the budget is
// already exceeded.
type budgetProjectionRule struct{}

func (budgetProjectionRule) Name() string { return string(entity.InsightTypeBudgetProjection) }

func (budgetProjectionRule) Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error) {
	budgets, err := rc.Budgets.ListActiveByUser(ctx, rc.UserID)
	if err != nil {
		return nil, err
	}

	insights := make([]*entity.Insight, 0, rc.Tuning.MaxBudgetInsights)

	for _, budget := range budgets {
		from := budget.StartDate
		to := budget.EndDate
		spent, err := rc.Transactions.SumByType(
			ctx,
			rc.UserID,
			entity.TransactionTypeExpense,
			budget.CategoryID,
			adapter.DateRange{From: &from, To: &to},
		)
		if err != nil {
			return nil, err
		}

		dailyRate := spent.InexactFloat64() / budget.ElapsedDays(rc.Now)
		projected := dailyRate * budget.TotalDays()
		amount := budget.Amount.InexactFloat64()

		if projected <= amount*rc.Tuning.BudgetProjectionRatio || !spent.LessThan(budget.Amount) {
			continue
		}

		name := "Overall"
		if budget.CategoryID != nil {
			name = categoryName(ctx, rc, *budget.CategoryID, "Overall")
		}
		overBy := int64(math.Round(projected - amount))

		insight := entity.NewInsight(
			rc.UserID,
			entity.InsightTypeBudgetProjection,
			fmt.Sprintf("%s budget at risk", name),
			fmt.Sprintf(
				"At the current rate, you'll exceed your %s budget by %s",
				name, rupees(decimal.NewFromInt(overBy)),
			),
			entity.SeverityWarning,
		)
		insight.CategoryID = budget.CategoryID
		insight.MetricValue = decimal.NewFromFloat(projected)
		insight.MetricContext = map[string]any{
			"spent":         spent.InexactFloat64(),
			"budget_amount": amount,
			"projected":     projected,
			"over_by":       overBy,
		}
		insight.IsActionable = true

		insights = append(insights, insight)
		if len(insights) == rc.Tuning.MaxBudgetInsights {
			break
		}
	}

	return insights, nil
}
