// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
)

// InsightModel represents the ai_insights table in the database.
type InsightModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_insights_user_generated"`
	InsightType   string          `gorm:"type:varchar(50);not null;index"`
	Title         string          `gorm:"type:varchar(255);not null"`
	Description   string          `gorm:"type:text;not null"`
	Severity      string          `gorm:"type:varchar(10);not null"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	MetricValue   decimal.Decimal `gorm:"type:decimal(15,2)"`
	MetricContext string          `gorm:"type:jsonb"`
	IsActionable  bool            `gorm:"default:false"`
	ActionType    string          `gorm:"type:varchar(50)"`
	GeneratedAt   time.Time       `gorm:"not null;index:idx_insights_user_generated"`
	IsRead        bool            `gorm:"default:false;index"`
	ReadAt        *time.Time      `gorm:"type:timestamp"`
	IsDismissed   bool            `gorm:"default:false;index"`
	DismissedAt   *time.Time      `gorm:"type:timestamp"`
}

// TableName returns the table name for the InsightModel.
func (InsightModel) TableName() string {
	return "ai_insights"
}

// ToEntity converts an InsightModel to a domain Insight entity.
func (m *InsightModel) ToEntity() *entity.Insight {
	metricContext := map[string]any{}
	if m.MetricContext != "" {
		// A corrupt context document degrades to an empty map; the numeric
		// contract fields live in MetricValue and the description.
		_ = json.Unmarshal([]byte(m.MetricContext), &metricContext)
	}

	return &entity.Insight{
		ID:            m.ID,
		UserID:        m.UserID,
		Type:          entity.InsightType(m.InsightType),
		Title:         m.Title,
		Description:   m.Description,
		Severity:      entity.InsightSeverity(m.Severity),
		CategoryID:    m.CategoryID,
		MetricValue:   m.MetricValue,
		MetricContext: metricContext,
		IsActionable:  m.IsActionable,
		ActionType:    m.ActionType,
		GeneratedAt:   m.GeneratedAt,
		IsRead:        m.IsRead,
		ReadAt:        m.ReadAt,
		IsDismissed:   m.IsDismissed,
		DismissedAt:   m.DismissedAt,
	}
}

// InsightFromEntity creates an InsightModel from a domain Insight entity.
func InsightFromEntity(insight *entity.Insight) *InsightModel {
	metricContext := "{}"
	if insight.MetricContext != nil {
		if raw, err := json.Marshal(insight.MetricContext); err == nil {
			metricContext = string(raw)
		}
	}

	return &InsightModel{
		ID:            insight.ID,
		UserID:        insight.UserID,
		InsightType:   string(insight.Type),
		Title:         insight.Title,
		Description:   insight.Description,
		Severity:      string(insight.Severity),
		CategoryID:    insight.CategoryID,
		MetricValue:   insight.MetricValue,
		MetricContext: metricContext,
		IsActionable:  insight.IsActionable,
		ActionType:    insight.ActionType,
		GeneratedAt:   insight.GeneratedAt,
		IsRead:        insight.IsRead,
		ReadAt:        insight.ReadAt,
		IsDismissed:   insight.IsDismissed,
		DismissedAt:   insight.DismissedAt,
	}
}
