// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionReader interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionReader {
	return &transactionRepository{
		db: db,
	}
}

// baseExpenseQuery scopes a query to one user's non-deleted expense rows.
// Soft-deleted rows are excluded by gorm's DeletedAt handling.
func (r *transactionRepository) baseExpenseQuery(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND type = ?", userID, string(entity.TransactionTypeExpense))
}

func applyDateRange(query *gorm.DB, dateRange adapter.DateRange) *gorm.DB {
	if dateRange.From != nil {
		query = query.Where("date >= ?", *dateRange.From)
	}
	if dateRange.To != nil {
		query = query.Where("date <= ?", *dateRange.To)
	}
	return query
}

// ListDailyExpenseTotals returns one summed point per day with expenses,
// ascending by date.
func (r *transactionRepository) ListDailyExpenseTotals(
	ctx context.Context,
	userID uuid.UUID,
	categoryID *uuid.UUID,
	dateRange adapter.DateRange,
) ([]entity.DailyPoint, error) {
	query := applyDateRange(r.baseExpenseQuery(ctx, userID), dateRange)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var rows []struct {
		Date  time.Time
		Total decimal.Decimal
	}
	result := query.
		Select("date, SUM(amount) AS total").
		Group("date").
		Order("date ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	points := make([]entity.DailyPoint, len(rows))
	for i, row := range rows {
		points[i] = entity.DailyPoint{Date: row.Date, Amount: row.Total}
	}
	return points, nil
}

// SumByType sums amounts of the given transaction type within the range.
func (r *transactionRepository) SumByType(
	ctx context.Context,
	userID uuid.UUID,
	transactionType entity.TransactionType,
	categoryID *uuid.UUID,
	dateRange adapter.DateRange,
) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND type = ?", userID, string(transactionType))
	query = applyDateRange(query, dateRange)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var row struct {
		Total decimal.Decimal
	}
	result := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&row)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return row.Total, nil
}

// SumExpensesByCategory sums categorized expenses per category within the range.
func (r *transactionRepository) SumExpensesByCategory(
	ctx context.Context,
	userID uuid.UUID,
	dateRange adapter.DateRange,
) ([]adapter.CategoryTotal, error) {
	query := applyDateRange(r.baseExpenseQuery(ctx, userID), dateRange).
		Where("category_id IS NOT NULL")

	var rows []struct {
		CategoryID uuid.UUID
		Total      decimal.Decimal
	}
	result := query.
		Select("category_id, SUM(amount) AS total").
		Group("category_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := make([]adapter.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = adapter.CategoryTotal{CategoryID: row.CategoryID, Total: row.Total}
	}
	return totals, nil
}

// ListRecentExpenses returns the newest expense transactions by creation time.
func (r *transactionRepository) ListRecentExpenses(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*entity.Transaction, error) {
	var models []model.TransactionModel
	result := r.baseExpenseQuery(ctx, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions, nil
}

// AverageExpenseForCategory returns the mean expense amount in a category,
// excluding the transaction being compared.
func (r *transactionRepository) AverageExpenseForCategory(
	ctx context.Context,
	userID uuid.UUID,
	categoryID uuid.UUID,
	excludeID uuid.UUID,
) (decimal.Decimal, error) {
	var row struct {
		AvgAmount decimal.Decimal
	}
	result := r.baseExpenseQuery(ctx, userID).
		Where("category_id = ? AND id <> ?", categoryID, excludeID).
		Select("COALESCE(AVG(amount), 0) AS avg_amount").
		Scan(&row)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return row.AvgAmount, nil
}

// FindRecurringCandidates groups non-recurring expenses by merchant and
// amount and returns pairs occurring at least minOccurrences times.
func (r *transactionRepository) FindRecurringCandidates(
	ctx context.Context,
	userID uuid.UUID,
	minOccurrences int,
	limit int,
) ([]entity.RecurringCandidate, error) {
	var rows []struct {
		Merchant    string
		Amount      decimal.Decimal
		Occurrences int
	}
	result := r.baseExpenseQuery(ctx, userID).
		Where("is_recurring = ? AND merchant <> ''", false).
		Select("merchant, amount, COUNT(*) AS occurrences").
		Group("merchant, amount").
		Having("COUNT(*) >= ?", minOccurrences).
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	candidates := make([]entity.RecurringCandidate, len(rows))
	for i, row := range rows {
		candidates[i] = entity.RecurringCandidate{
			Merchant:    row.Merchant,
			Amount:      row.Amount,
			Occurrences: row.Occurrences,
		}
	}
	return candidates, nil
}

// ListUserIDsWithTransactions returns distinct owners of non-deleted transactions.
func (r *transactionRepository) ListUserIDsWithTransactions(ctx context.Context) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Distinct("user_id").
		Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return userIDs, nil
}
