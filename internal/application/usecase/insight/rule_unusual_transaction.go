package insight

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
)

// unusualTransactionRule scans the most recent expenses for amounts far above
// the user's historical average in the same category.
type unusualTransactionRule struct{}

func (unusualTransactionRule) Name() string { return string(entity.InsightTypeUnusualTransaction) }

func (unusualTransactionRule) Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error) {
	recent, err := rc.Transactions.ListRecentExpenses(ctx, rc.UserID, rc.Tuning.UnusualScanLimit)
	if err != nil {
		return nil, err
	}

	multiple := decimal.NewFromFloat(rc.Tuning.UnusualMultiple)
	insights := make([]*entity.Insight, 0, rc.Tuning.MaxUnusualInsights)

	for _, txn := range recent {
		if txn.CategoryID == nil {
			continue
		}

		average, err := rc.Transactions.AverageExpenseForCategory(ctx, rc.UserID, *txn.CategoryID, txn.ID)
		if err != nil {
			return nil, err
		}
		if !average.IsPositive() || !txn.Amount.GreaterThan(average.Mul(multiple)) {
			continue
		}

		name := categoryName(ctx, rc, *txn.CategoryID, "")
		merchant := txn.Merchant
		if merchant == "" {
			merchant = "merchant"
		}
		multiplier := int(math.Round(txn.Amount.Div(average).InexactFloat64()))

		insight := entity.NewInsight(
			rc.UserID,
			entity.InsightTypeUnusualTransaction,
			fmt.Sprintf("Unusual %s expense", name),
			fmt.Sprintf(
				"%s at %s is %dx your average %s transaction (%s)",
				rupees(txn.Amount), merchant, multiplier, name, rupees(average),
			),
			entity.SeverityInfo,
		)
		insight.CategoryID = txn.CategoryID
		insight.MetricValue = txn.Amount
		insight.MetricContext = map[string]any{
			"amount":     txn.Amount.InexactFloat64(),
			"average":    average.InexactFloat64(),
			"multiplier": multiplier,
		}

		insights = append(insights, insight)
		if len(insights) == rc.Tuning.MaxUnusualInsights {
			break
		}
	}

	return insights, nil
}
