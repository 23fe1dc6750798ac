package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// spendingSpikeRule flags a week whose expense total runs well ahead of the
// average of the two prior rolling weeks.
type spendingSpikeRule struct{}

func (spendingSpikeRule) Name() string { return string(entity.InsightTypeSpendingSpike) }

func (r spendingSpikeRule) Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error) {
	now := rc.Now
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	threeWeeksAgo := now.AddDate(0, 0, -21)

	thisWeek, err := r.expenseSum(ctx, rc, weekAgo, now)
	if err != nil {
		return nil, err
	}
	lastWeek, err := r.expenseSum(ctx, rc, twoWeeksAgo, weekAgo)
	if err != nil {
		return nil, err
	}
	priorWeek, err := r.expenseSum(ctx, rc, threeWeeksAgo, twoWeeksAgo)
	if err != nil {
		return nil, err
	}

	average := lastWeek.Add(priorWeek).Div(decimal.NewFromInt(2))
	if !average.IsPositive() {
		return nil, nil
	}

	threshold := average.Mul(decimal.NewFromFloat(rc.Tuning.SpikeRatio))
	if !thisWeek.GreaterThan(threshold) {
		return nil, nil
	}

	severity := entity.SeverityWarning
	if thisWeek.GreaterThan(average.Mul(decimal.NewFromFloat(rc.Tuning.SpikeCriticalRatio))) {
		severity = entity.SeverityCritical
	}

	increase := percentChange(thisWeek, average)
	insight := entity.NewInsight(
		rc.UserID,
		entity.InsightTypeSpendingSpike,
		"Spending spike this week",
		fmt.Sprintf(
			"Your spending this week (%s) is %d%% higher than your 2-week average (%s)",
			rupees(thisWeek), increase, rupees(average),
		),
		severity,
	)
	insight.MetricValue = thisWeek
	insight.MetricContext = map[string]any{
		"current":      thisWeek.InexactFloat64(),
		"average":      average.InexactFloat64(),
		"increase_pct": increase,
	}
	insight.IsActionable = true

	return []*entity.Insight{insight}, nil
}

func (spendingSpikeRule) expenseSum(
	ctx context.Context,
	rc RuleContext,
	from, to time.Time,
) (decimal.Decimal, error) {
	return rc.Transactions.SumByType(
		ctx,
		rc.UserID,
		entity.TransactionTypeExpense,
		nil,
		adapter.DateRange{From: &from, To: &to},
	)
}
