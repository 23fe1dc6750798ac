// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a financial transaction in the SpendLens system.
// Amounts are stored as positive values; Type distinguishes direction.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Merchant    string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  *uuid.UUID // Optional, can be uncategorized
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	merchant string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	isRecurring bool,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Merchant:    merchant,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		IsRecurring: isRecurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RecurringCandidate represents a merchant/amount pair that repeats often
// enough to look like a subscription or standing charge.
type RecurringCandidate struct {
	Merchant    string
	Amount      decimal.Decimal
	Occurrences int
}
