package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/persistence/model"
)

func TestBudgetRepository_ListActiveByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	db := newTestDB(t)
	repo := NewBudgetRepository(db)

	newBudget := func(name string, start time.Time, active bool, owner uuid.UUID) *model.BudgetModel {
		budget := model.BudgetFromEntity(entity.NewBudget(
			owner, nil, name, decimal.NewFromInt(10000), start, start.AddDate(0, 1, 0),
		))
		budget.IsActive = active
		return budget
	}

	budgets := []*model.BudgetModel{
		newBudget("june", day(2025, time.June, 1), true, userID),
		newBudget("may", day(2025, time.May, 1), true, userID),
		newBudget("paused", day(2025, time.April, 1), false, userID),
		newBudget("foreign", day(2025, time.June, 1), true, uuid.New()),
	}
	for _, budget := range budgets {
		if err := db.Create(budget).Error; err != nil {
			t.Fatalf("failed to seed budget: %v", err)
		}
	}

	active, err := repo.ListActiveByUser(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active budgets, got %d", len(active))
	}
	if active[0].Name != "may" || active[1].Name != "june" {
		t.Errorf("expected start_date order, got %s then %s", active[0].Name, active[1].Name)
	}
}

func TestCategoryRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	stored := model.CategoryFromEntity(entity.NewCategory(
		uuid.New(), "Groceries", "#00ff00", "cart", entity.CategoryTypeExpense,
	))
	if err := db.Create(stored).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	t.Run("found", func(t *testing.T) {
		category, err := repo.FindByID(ctx, stored.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if category.Name != "Groceries" || category.UserID != stored.UserID {
			t.Errorf("unexpected category: %+v", category)
		}
	})

	t.Run("missing ID returns the domain sentinel", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrCategoryNotFoundForForecast) {
			t.Errorf("expected ErrCategoryNotFoundForForecast, got %v", err)
		}
	})
}
