package insight

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// incomeChangeRule compares this month's income against the trailing
// three-month average and reports deviations in either direction.
type incomeChangeRule struct{}

func (incomeChangeRule) Name() string { return string(entity.InsightTypeIncomeChange) }

func (incomeChangeRule) Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error) {
	thisMonthStart := monthStart(rc.Now, 0)
	threeMonthsAgo := monthStart(rc.Now, -3)
	trailingEnd := thisMonthStart.AddDate(0, 0, -1)

	current, err := rc.Transactions.SumByType(
		ctx, rc.UserID, entity.TransactionTypeIncome, nil,
		adapter.DateRange{From: &thisMonthStart},
	)
	if err != nil {
		return nil, err
	}
	trailing, err := rc.Transactions.SumByType(
		ctx, rc.UserID, entity.TransactionTypeIncome, nil,
		adapter.DateRange{From: &threeMonthsAgo, To: &trailingEnd},
	)
	if err != nil {
		return nil, err
	}

	average := trailing.Div(decimal.NewFromInt(3))
	if !average.IsPositive() {
		return nil, nil
	}

	deviation := current.Sub(average).Abs().Div(average).InexactFloat64()
	if deviation <= rc.Tuning.IncomeDeviation {
		return nil, nil
	}

	direction := "lower"
	if current.GreaterThan(average) {
		direction = "higher"
	}
	change := percentChange(current, average)
	if change < 0 {
		change = -change
	}

	insight := entity.NewInsight(
		rc.UserID,
		entity.InsightTypeIncomeChange,
		fmt.Sprintf("Income %s than average", direction),
		fmt.Sprintf(
			"Your income this month (%s) is %d%% %s than your 3-month average (%s)",
			rupees(current), change, direction, rupees(average),
		),
		entity.SeverityInfo,
	)
	insight.MetricValue = current
	insight.MetricContext = map[string]any{
		"current":    current.InexactFloat64(),
		"average":    average.InexactFloat64(),
		"change_pct": change,
		"direction":  direction,
	}

	return []*entity.Insight{insight}, nil
}
