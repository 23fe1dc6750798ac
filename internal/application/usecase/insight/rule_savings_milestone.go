package insight

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// savingsMilestoneRule celebrates a month where the savings rate clears the
// tuned target.
type savingsMilestoneRule struct{}

func (savingsMilestoneRule) Name() string { return string(entity.InsightTypeSavingsMilestone) }

func (savingsMilestoneRule) Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error) {
	start := monthStart(rc.Now, 0)
	window := adapter.DateRange{From: &start}

	income, err := rc.Transactions.SumByType(ctx, rc.UserID, entity.TransactionTypeIncome, nil, window)
	if err != nil {
		return nil, err
	}
	expense, err := rc.Transactions.SumByType(ctx, rc.UserID, entity.TransactionTypeExpense, nil, window)
	if err != nil {
		return nil, err
	}

	if !income.IsPositive() {
		return nil, nil
	}

	saved := income.Sub(expense)
	savingsRate := saved.Div(income).InexactFloat64() * 100
	if savingsRate < rc.Tuning.SavingsRateTarget {
		return nil, nil
	}

	insight := entity.NewInsight(
		rc.UserID,
		entity.InsightTypeSavingsMilestone,
		"Great savings rate! 🎉",
		fmt.Sprintf(
			"You saved %d%% of your income this month (%s). Keep it up!",
			int(math.Round(savingsRate)), rupees(saved),
		),
		entity.SeverityInfo,
	)
	insight.MetricValue = decimal.NewFromFloat(savingsRate)
	insight.MetricContext = map[string]any{
		"income":       income.InexactFloat64(),
		"expense":      expense.InexactFloat64(),
		"savings_rate": savingsRate,
	}

	return []*entity.Insight{insight}, nil
}
