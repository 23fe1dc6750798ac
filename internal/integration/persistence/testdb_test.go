package persistence

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/integration/persistence/model"
)

// newTestDB opens a fresh in-memory database per test so state never leaks
// between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.TransactionModel{},
		&model.CategoryModel{},
		&model.BudgetModel{},
		&model.InsightModel{},
		&model.ForecastResultModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedTransaction(
	t *testing.T,
	db *gorm.DB,
	userID uuid.UUID,
	transactionType entity.TransactionType,
	date time.Time,
	amount int64,
	mutate func(*model.TransactionModel),
) *model.TransactionModel {
	t.Helper()

	seeded := entity.NewTransaction(
		userID, date, "seeded", "", decimal.NewFromInt(amount), transactionType, nil, false,
	)
	seeded.CreatedAt = date
	seeded.UpdatedAt = date

	transaction := model.TransactionFromEntity(seeded)
	if mutate != nil {
		mutate(transaction)
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	return transaction
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}
