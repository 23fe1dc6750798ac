// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/integration/persistence/model"
)

// forecastRepository implements the adapter.ForecastRepository interface.
type forecastRepository struct {
	db *gorm.DB
}

// NewForecastRepository creates a new forecast repository instance.
func NewForecastRepository(db *gorm.DB) adapter.ForecastRepository {
	return &forecastRepository{
		db: db,
	}
}

// Create appends a new forecast result.
func (r *forecastRepository) Create(ctx context.Context, forecastResult *entity.ForecastResult) error {
	forecastModel, err := model.ForecastResultFromEntity(forecastResult)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Create(forecastModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindLatestValid retrieves the newest unexpired result for the user and
// forecast type. Absence is not an error; it returns nil so the caller
// regenerates.
func (r *forecastRepository) FindLatestValid(
	ctx context.Context,
	userID uuid.UUID,
	forecastType entity.ForecastType,
	now time.Time,
) (*entity.ForecastResult, error) {
	var forecastModel model.ForecastResultModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND forecast_type = ? AND valid_until > ?", userID, string(forecastType), now).
		Order("generated_at DESC").
		First(&forecastModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return forecastModel.ToEntity()
}
