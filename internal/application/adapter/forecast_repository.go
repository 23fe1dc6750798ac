// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

// ForecastRepository defines the interface for forecast persistence operations.
// Results are append-only; a new generation supersedes the previous one.
type ForecastRepository interface {
	// Create appends a new forecast result.
	Create(ctx context.Context, result *entity.ForecastResult) error

	// FindLatestValid retrieves the newest unexpired result for the user and
	// forecast type, or nil when none exists.
	FindLatestValid(
		ctx context.Context,
		userID uuid.UUID,
		forecastType entity.ForecastType,
		now time.Time,
	) (*entity.ForecastResult, error)
}
