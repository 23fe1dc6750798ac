// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

// InsightFilter defines filter options for listing insights.
type InsightFilter struct {
	UserID     uuid.UUID
	Type       *entity.InsightType
	Severity   *entity.InsightSeverity
	UnreadOnly bool
	Limit      int
}

// InsightRepository defines the interface for insight persistence operations.
type InsightRepository interface {
	// Create appends a new insight record.
	Create(ctx context.Context, insight *entity.Insight) error

	// ExistsRecent reports whether an insight with the same user, type and
	// title was generated at or after the given instant. This is the
	// advisory dedup check; it is not a uniqueness guarantee.
	ExistsRecent(
		ctx context.Context,
		userID uuid.UUID,
		insightType entity.InsightType,
		title string,
		since time.Time,
	) (bool, error)

	// FindByFilter retrieves non-dismissed insights matching the filter,
	// newest first.
	FindByFilter(ctx context.Context, filter InsightFilter) ([]*entity.Insight, error)

	// FindByIDAndUser retrieves an insight by ID, scoped to its owner.
	FindByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Insight, error)

	// Update persists flag changes (read/dismissed) on an existing insight.
	Update(ctx context.Context, insight *entity.Insight) error
}
