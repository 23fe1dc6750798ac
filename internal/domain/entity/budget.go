// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a spending budget for a period, optionally scoped to a
// single category. A nil CategoryID means the budget covers all spending.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	Name       string
	Amount     decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity.
func NewBudget(
	userID uuid.UUID,
	categoryID *uuid.UUID,
	name string,
	amount decimal.Decimal,
	startDate, endDate time.Time,
) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Name:       name,
		Amount:     amount,
		StartDate:  startDate,
		EndDate:    endDate,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// TotalDays returns the number of days the budget period spans, never below 1.
func (b *Budget) TotalDays() float64 {
	days := b.EndDate.Sub(b.StartDate).Hours() / 24
	if days < 1 {
		return 1
	}
	return days
}

// ElapsedDays returns the number of days elapsed since the budget started,
// never below 1 so burn-rate division is always defined.
func (b *Budget) ElapsedDays(now time.Time) float64 {
	days := now.Sub(b.StartDate).Hours() / 24
	if days < 1 {
		return 1
	}
	return days
}
