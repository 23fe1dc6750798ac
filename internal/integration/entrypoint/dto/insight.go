// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
)

// InsightResponse represents a single insight in the response.
type InsightResponse struct {
	ID            string         `json:"id"`
	InsightType   string         `json:"insight_type"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Severity      string         `json:"severity"`
	CategoryID    *string        `json:"category_id,omitempty"`
	MetricValue   float64        `json:"metric_value"`
	MetricContext map[string]any `json:"metric_context"`
	IsActionable  bool           `json:"is_actionable"`
	ActionType    string         `json:"action_type,omitempty"`
	GeneratedAt   string         `json:"generated_at"`
	IsRead        bool           `json:"is_read"`
	ReadAt        *string        `json:"read_at,omitempty"`
}

// InsightListResponse represents the response for listing insights.
type InsightListResponse struct {
	Insights []InsightResponse `json:"insights"`
	Count    int               `json:"count"`
}

// GenerateInsightsResponse represents the response for generating insights.
type GenerateInsightsResponse struct {
	Insights []InsightResponse `json:"insights"`
	Created  int               `json:"created"`
}

// ToInsightResponse converts a domain Insight entity to an InsightResponse DTO.
func ToInsightResponse(insight *entity.Insight) InsightResponse {
	metricValue, _ := insight.MetricValue.Float64()

	var categoryID *string
	if insight.CategoryID != nil {
		id := insight.CategoryID.String()
		categoryID = &id
	}

	var readAt *string
	if insight.ReadAt != nil {
		formatted := insight.ReadAt.Format(time.RFC3339)
		readAt = &formatted
	}

	metricContext := insight.MetricContext
	if metricContext == nil {
		metricContext = map[string]any{}
	}

	return InsightResponse{
		ID:            insight.ID.String(),
		InsightType:   string(insight.Type),
		Title:         insight.Title,
		Description:   insight.Description,
		Severity:      string(insight.Severity),
		CategoryID:    categoryID,
		MetricValue:   metricValue,
		MetricContext: metricContext,
		IsActionable:  insight.IsActionable,
		ActionType:    insight.ActionType,
		GeneratedAt:   insight.GeneratedAt.Format(time.RFC3339),
		IsRead:        insight.IsRead,
		ReadAt:        readAt,
	}
}

// ToInsightListResponse converts a slice of insights to an InsightListResponse DTO.
func ToInsightListResponse(insights []*entity.Insight) InsightListResponse {
	responses := make([]InsightResponse, len(insights))
	for i, insight := range insights {
		responses[i] = ToInsightResponse(insight)
	}
	return InsightListResponse{
		Insights: responses,
		Count:    len(responses),
	}
}

// ToGenerateInsightsResponse converts newly created insights to a GenerateInsightsResponse DTO.
func ToGenerateInsightsResponse(insights []*entity.Insight) GenerateInsightsResponse {
	responses := make([]InsightResponse, len(insights))
	for i, insight := range insights {
		responses[i] = ToInsightResponse(insight)
	}
	return GenerateInsightsResponse{
		Insights: responses,
		Created:  len(responses),
	}
}
