// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

// ForecastResultModel represents the forecast_results table in the database.
// Forecast points and accuracy metrics are stored as JSON documents; the
// table is append-only and results are looked up by validity window.
type ForecastResultModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_forecasts_user_type"`
	ForecastType    string     `gorm:"type:varchar(20);not null;index:idx_forecasts_user_type"`
	CategoryID      *uuid.UUID `gorm:"type:uuid;index"`
	ForecastData    string     `gorm:"type:jsonb;not null"`
	AccuracyMetrics *string    `gorm:"type:jsonb"`
	ModelUsed       string     `gorm:"type:varchar(50);not null"`
	DataPointsUsed  int        `gorm:"not null"`
	HorizonMonths   int        `gorm:"not null"`
	GeneratedAt     time.Time  `gorm:"not null"`
	ValidUntil      time.Time  `gorm:"not null;index"`
	CreatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the ForecastResultModel.
func (ForecastResultModel) TableName() string {
	return "forecast_results"
}

// ToEntity converts a ForecastResultModel to a domain ForecastResult entity.
func (m *ForecastResultModel) ToEntity() (*entity.ForecastResult, error) {
	var points []entity.ForecastPoint
	if err := json.Unmarshal([]byte(m.ForecastData), &points); err != nil {
		return nil, fmt.Errorf("failed to decode forecast data: %w", err)
	}

	var metrics *entity.AccuracyMetrics
	if m.AccuracyMetrics != nil {
		metrics = &entity.AccuracyMetrics{}
		if err := json.Unmarshal([]byte(*m.AccuracyMetrics), metrics); err != nil {
			return nil, fmt.Errorf("failed to decode accuracy metrics: %w", err)
		}
	}

	return &entity.ForecastResult{
		ID:             m.ID,
		UserID:         m.UserID,
		Type:           entity.ForecastType(m.ForecastType),
		CategoryID:     m.CategoryID,
		Forecast:       points,
		Metrics:        metrics,
		ModelUsed:      m.ModelUsed,
		DataPointsUsed: m.DataPointsUsed,
		HorizonMonths:  m.HorizonMonths,
		GeneratedAt:    m.GeneratedAt,
		ValidUntil:     m.ValidUntil,
	}, nil
}

// ForecastResultFromEntity creates a ForecastResultModel from a domain entity.
func ForecastResultFromEntity(result *entity.ForecastResult) (*ForecastResultModel, error) {
	forecastData, err := json.Marshal(result.Forecast)
	if err != nil {
		return nil, fmt.Errorf("failed to encode forecast data: %w", err)
	}

	var metrics *string
	if result.Metrics != nil {
		raw, err := json.Marshal(result.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to encode accuracy metrics: %w", err)
		}
		encoded := string(raw)
		metrics = &encoded
	}

	return &ForecastResultModel{
		ID:              result.ID,
		UserID:          result.UserID,
		ForecastType:    string(result.Type),
		CategoryID:      result.CategoryID,
		ForecastData:    string(forecastData),
		AccuracyMetrics: metrics,
		ModelUsed:       result.ModelUsed,
		DataPointsUsed:  result.DataPointsUsed,
		HorizonMonths:   result.HorizonMonths,
		GeneratedAt:     result.GeneratedAt,
		ValidUntil:      result.ValidUntil,
		CreatedAt:       result.GeneratedAt,
	}, nil
}
