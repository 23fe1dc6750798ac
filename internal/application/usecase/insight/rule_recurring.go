package insight

import (
	"context"
	"fmt"

	"github.com/spendlens/backend/internal/domain/entity"
)

// recurringDetectionRule surfaces merchant/amount pairs that repeat often
// enough to look like an unflagged subscription or standing charge.
type recurringDetectionRule struct{}

func (recurringDetectionRule) Name() string { return string(entity.InsightTypeRecurringDetected) }

func (recurringDetectionRule) Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error) {
	candidates, err := rc.Transactions.FindRecurringCandidates(
		ctx,
		rc.UserID,
		rc.Tuning.RecurringMinOccurrences,
		rc.Tuning.MaxRecurringInsights,
	)
	if err != nil {
		return nil, err
	}

	insights := make([]*entity.Insight, 0, len(candidates))
	for _, candidate := range candidates {
		insight := entity.NewInsight(
			rc.UserID,
			entity.InsightTypeRecurringDetected,
			"Recurring expense detected",
			fmt.Sprintf(
				"%s (%s) appears %d times. Want to mark it as recurring?",
				candidate.Merchant, rupees(candidate.Amount), candidate.Occurrences,
			),
			entity.SeverityInfo,
		)
		insight.MetricValue = candidate.Amount
		insight.MetricContext = map[string]any{
			"merchant":    candidate.Merchant,
			"amount":      candidate.Amount.InexactFloat64(),
			"occurrences": candidate.Occurrences,
		}
		insight.IsActionable = true
		insight.ActionType = entity.ActionTypeConvertToRecurring

		insights = append(insights, insight)
	}

	return insights, nil
}
