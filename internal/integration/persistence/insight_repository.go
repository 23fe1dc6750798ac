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
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/persistence/model"
)

// insightRepository implements the adapter.InsightRepository interface.
type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a new insight repository instance.
func NewInsightRepository(db *gorm.DB) adapter.InsightRepository {
	return &insightRepository{
		db: db,
	}
}

// Create appends a new insight record.
func (r *insightRepository) Create(ctx context.Context, insight *entity.Insight) error {
	insightModel := model.InsightFromEntity(insight)
	result := r.db.WithContext(ctx).Create(insightModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ExistsRecent reports whether an insight with the same user, type and title
// was generated at or after the given instant. Dismissed insights still count
// so a dismissed insight does not immediately reappear.
func (r *insightRepository) ExistsRecent(
	ctx context.Context,
	userID uuid.UUID,
	insightType entity.InsightType,
	title string,
	since time.Time,
) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.InsightModel{}).
		Where("user_id = ? AND insight_type = ? AND title = ? AND generated_at >= ?",
			userID, string(insightType), title, since).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FindByFilter retrieves non-dismissed insights matching the filter, newest first.
func (r *insightRepository) FindByFilter(ctx context.Context, filter adapter.InsightFilter) ([]*entity.Insight, error) {
	query := r.db.WithContext(ctx).
		Model(&model.InsightModel{}).
		Where("user_id = ? AND is_dismissed = ?", filter.UserID, false)

	if filter.Type != nil {
		query = query.Where("insight_type = ?", string(*filter.Type))
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", string(*filter.Severity))
	}
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var insightModels []model.InsightModel
	result := query.Order("generated_at DESC").Find(&insightModels)
	if result.Error != nil {
		return nil, result.Error
	}

	insights := make([]*entity.Insight, len(insightModels))
	for i := range insightModels {
		insights[i] = insightModels[i].ToEntity()
	}
	return insights, nil
}

// FindByIDAndUser retrieves an insight by ID, scoped to its owner.
func (r *insightRepository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Insight, error) {
	var insightModel model.InsightModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&insightModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInsightNotFound
		}
		return nil, result.Error
	}
	return insightModel.ToEntity(), nil
}

// Update persists flag changes on an existing insight.
func (r *insightRepository) Update(ctx context.Context, insight *entity.Insight) error {
	insightModel := model.InsightFromEntity(insight)
	result := r.db.WithContext(ctx).
		Model(&model.InsightModel{}).
		Where("id = ?", insight.ID).
		Updates(map[string]any{
			"is_read":      insightModel.IsRead,
			"read_at":      insightModel.ReadAt,
			"is_dismissed": insightModel.IsDismissed,
			"dismissed_at": insightModel.DismissedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInsightNotFound
	}
	return nil
}
