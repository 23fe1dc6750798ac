// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
)

// DateRange bounds a transaction query. Nil ends mean unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// CategoryTotal is one category's summed expense amount over a period.
type CategoryTotal struct {
	CategoryID uuid.UUID
	Total      decimal.Decimal
}

// TransactionReader provides the aggregate reads the engine needs over the
// externally-owned transaction store. All queries exclude soft-deleted rows
// and are scoped to a single user.
type TransactionReader interface {
	// ListDailyExpenseTotals returns one point per day with at least one
	// expense transaction, ordered ascending by date. An optional category
	// filter narrows the series. A user with no matching transactions yields
	// an empty slice, not an error.
	ListDailyExpenseTotals(
		ctx context.Context,
		userID uuid.UUID,
		categoryID *uuid.UUID,
		dateRange DateRange,
	) ([]entity.DailyPoint, error)

	// SumByType sums transaction amounts of the given type within the range,
	// optionally scoped to one category. Returns zero for an empty range.
	SumByType(
		ctx context.Context,
		userID uuid.UUID,
		transactionType entity.TransactionType,
		categoryID *uuid.UUID,
		dateRange DateRange,
	) (decimal.Decimal, error)

	// SumExpensesByCategory returns per-category expense totals within the
	// range. Uncategorized transactions are excluded.
	SumExpensesByCategory(
		ctx context.Context,
		userID uuid.UUID,
		dateRange DateRange,
	) ([]CategoryTotal, error)

	// ListRecentExpenses returns the most recently created expense
	// transactions, newest first.
	ListRecentExpenses(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error)

	// AverageExpenseForCategory returns the mean expense amount for a
	// category, excluding one transaction (the one being compared).
	// Returns zero when no other transactions exist.
	AverageExpenseForCategory(
		ctx context.Context,
		userID uuid.UUID,
		categoryID uuid.UUID,
		excludeID uuid.UUID,
	) (decimal.Decimal, error)

	// FindRecurringCandidates returns merchant/amount pairs that occur at
	// least minOccurrences times among non-recurring expense transactions
	// with a merchant set.
	FindRecurringCandidates(
		ctx context.Context,
		userID uuid.UUID,
		minOccurrences int,
		limit int,
	) ([]entity.RecurringCandidate, error)

	// ListUserIDsWithTransactions returns the distinct users owning at least
	// one non-deleted transaction. Used by the daily insight sweep.
	ListUserIDsWithTransactions(ctx context.Context) ([]uuid.UUID, error)
}
