// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
)

// ForecastPointResponse represents one predicted month in the response.
type ForecastPointResponse struct {
	Month      string  `json:"month"`
	Predicted  int64   `json:"predicted"`
	Lower      int64   `json:"lower"`
	Upper      int64   `json:"upper"`
	Confidence float64 `json:"confidence"`
}

// AccuracyMetricsResponse represents backtest accuracy in the response.
type AccuracyMetricsResponse struct {
	MAE  int64   `json:"mae"`
	MAPE float64 `json:"mape"`
	RMSE int64   `json:"rmse"`
}

// ForecastResponse represents a generated forecast in the response.
type ForecastResponse struct {
	ID             string                   `json:"id"`
	ForecastType   string                   `json:"forecast_type"`
	CategoryID     *string                  `json:"category_id,omitempty"`
	Forecast       []ForecastPointResponse  `json:"forecast"`
	Accuracy       *AccuracyMetricsResponse `json:"accuracy,omitempty"`
	ModelUsed      string                   `json:"model_used"`
	DataPointsUsed int                      `json:"data_points_used"`
	HorizonMonths  int                      `json:"horizon_months"`
	GeneratedAt    string                   `json:"generated_at"`
	ValidUntil     string                   `json:"valid_until"`
}

// InsufficientDataResponse represents the structured outcome for histories
// too short to forecast.
type InsufficientDataResponse struct {
	Reason    string `json:"reason"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

// ToForecastResponse converts a ForecastResult entity to a ForecastResponse DTO.
func ToForecastResponse(result *entity.ForecastResult) ForecastResponse {
	points := make([]ForecastPointResponse, len(result.Forecast))
	for i, point := range result.Forecast {
		points[i] = ForecastPointResponse{
			Month:      point.Month,
			Predicted:  point.Predicted,
			Lower:      point.Lower,
			Upper:      point.Upper,
			Confidence: point.Confidence,
		}
	}

	var accuracy *AccuracyMetricsResponse
	if result.Metrics != nil {
		accuracy = &AccuracyMetricsResponse{
			MAE:  result.Metrics.MAE,
			MAPE: result.Metrics.MAPE,
			RMSE: result.Metrics.RMSE,
		}
	}

	var categoryID *string
	if result.CategoryID != nil {
		id := result.CategoryID.String()
		categoryID = &id
	}

	return ForecastResponse{
		ID:             result.ID.String(),
		ForecastType:   string(result.Type),
		CategoryID:     categoryID,
		Forecast:       points,
		Accuracy:       accuracy,
		ModelUsed:      result.ModelUsed,
		DataPointsUsed: result.DataPointsUsed,
		HorizonMonths:  result.HorizonMonths,
		GeneratedAt:    result.GeneratedAt.Format(time.RFC3339),
		ValidUntil:     result.ValidUntil.Format(time.RFC3339),
	}
}

// ToInsufficientDataResponse converts an InsufficientData outcome to its DTO.
func ToInsufficientDataResponse(data *entity.InsufficientData) InsufficientDataResponse {
	return InsufficientDataResponse{
		Reason:    data.Reason,
		Required:  data.Required,
		Available: data.Available,
	}
}
