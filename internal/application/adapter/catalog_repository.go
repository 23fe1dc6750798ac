// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

// CategoryRepository provides lookups into the category catalog.
type CategoryRepository interface {
	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
}

// BudgetRepository provides lookups into the budget catalog.
type BudgetRepository interface {
	// ListActiveByUser retrieves all active, non-deleted budgets for a user.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)
}
