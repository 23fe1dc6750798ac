// Package insight contains the insight rule engine: a fixed battery of
// independent detection rules over a user's transaction and budget data,
// with advisory deduplication on persist.
package insight

import (
	"context"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// RuleContext carries everything a rule may read. Rules are read-only; the
// engine owns the write phase.
type RuleContext struct {
	UserID       uuid.UUID
	Now          time.Time
	Transactions adapter.TransactionReader
	Budgets      adapter.BudgetRepository
	Categories   adapter.CategoryRepository
	Tuning       valueobject.Tuning
}

// Rule is one independent detection rule. Evaluate returns zero or more
// insight drafts; an error skips the rule without aborting its siblings.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error)
}

// DefaultRules returns the full battery in its fixed evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		spendingSpikeRule{},
		categoryCreepRule{},
		savingsMilestoneRule{},
		budgetProjectionRule{},
		unusualTransactionRule{},
		recurringDetectionRule{},
		incomeChangeRule{},
	}
}

// monthStart returns midnight on the first day of the month offset months
// from t (0 = current month, -1 = previous month).
func monthStart(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

// rupees renders a decimal amount as a rounded, comma-grouped rupee string.
func rupees(amount decimal.Decimal) string {
	return "₹" + humanize.Comma(amount.Round(0).IntPart())
}

// percentChange returns the rounded percentage change from previous to
// current. Callers guarantee previous is non-zero.
func percentChange(current, previous decimal.Decimal) int {
	change := current.Sub(previous).Div(previous).InexactFloat64() * 100
	return int(math.Round(change))
}

// categoryName resolves a category's display name, falling back when the
// category cannot be loaded; a missing name never fails a rule.
func categoryName(ctx context.Context, rc RuleContext, categoryID uuid.UUID, fallback string) string {
	category, err := rc.Categories.FindByID(ctx, categoryID)
	if err != nil || category == nil {
		return fallback
	}
	return category.Name
}
