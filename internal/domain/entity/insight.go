// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InsightType identifies the detection rule that produced an insight.
type InsightType string

const (
	InsightTypeSpendingSpike      InsightType = "spending_spike"
	InsightTypeCategoryCreep      InsightType = "category_creep"
	InsightTypeSavingsMilestone   InsightType = "savings_milestone"
	InsightTypeBudgetProjection   InsightType = "budget_projection"
	InsightTypeUnusualTransaction InsightType = "unusual_transaction"
	InsightTypeRecurringDetected  InsightType = "recurring_detected"
	InsightTypeIncomeChange       InsightType = "income_change"
)

// InsightSeverity represents how urgent an insight is for the user.
type InsightSeverity string

const (
	SeverityInfo     InsightSeverity = "info"
	SeverityWarning  InsightSeverity = "warning"
	SeverityCritical InsightSeverity = "critical"
)

// ActionTypeConvertToRecurring suggests flagging a transaction as recurring.
const ActionTypeConvertToRecurring = "convert_to_recurring"

// Insight represents a single rule-derived observation about a user's
// spending behavior. Insights are append-only apart from the one-way
// read/dismissed flags.
type Insight struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Type          InsightType
	Title         string
	Description   string
	Severity      InsightSeverity
	CategoryID    *uuid.UUID
	MetricValue   decimal.Decimal
	MetricContext map[string]any
	IsActionable  bool
	ActionType    string
	GeneratedAt   time.Time
	IsRead        bool
	ReadAt        *time.Time
	IsDismissed   bool
	DismissedAt   *time.Time
}

// NewInsight creates a new Insight entity with default flag state.
func NewInsight(
	userID uuid.UUID,
	insightType InsightType,
	title string,
	description string,
	severity InsightSeverity,
) *Insight {
	return &Insight{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          insightType,
		Title:         title,
		Description:   description,
		Severity:      severity,
		MetricContext: map[string]any{},
		GeneratedAt:   time.Now().UTC(),
	}
}

// MarkRead sets the read flag. The transition is one-way and idempotent.
func (i *Insight) MarkRead(now time.Time) {
	if i.IsRead {
		return
	}
	i.IsRead = true
	i.ReadAt = &now
}

// Dismiss sets the dismissed flag. The transition is one-way and idempotent.
func (i *Insight) Dismiss(now time.Time) {
	if i.IsDismissed {
		return
	}
	i.IsDismissed = true
	i.DismissedAt = &now
}
