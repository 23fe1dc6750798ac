// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/usecase/insight"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/entrypoint/dto"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
)

// InsightController handles insight endpoints.
type InsightController struct {
	generateInsightsUseCase *insight.GenerateInsightsUseCase
	getInsightsUseCase      *insight.GetInsightsUseCase
	markReadUseCase         *insight.MarkReadUseCase
	dismissUseCase          *insight.DismissUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(
	generateInsightsUseCase *insight.GenerateInsightsUseCase,
	getInsightsUseCase *insight.GetInsightsUseCase,
	markReadUseCase *insight.MarkReadUseCase,
	dismissUseCase *insight.DismissUseCase,
) *InsightController {
	return &InsightController{
		generateInsightsUseCase: generateInsightsUseCase,
		getInsightsUseCase:      getInsightsUseCase,
		markReadUseCase:         markReadUseCase,
		dismissUseCase:          dismissUseCase,
	}
}

// GetInsights handles GET /insights requests.
func (c *InsightController) GetInsights(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := insight.GetInsightsInput{
		UserID:     userID,
		UnreadOnly: ctx.Query("unread_only") == "true",
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		insightType := entity.InsightType(typeStr)
		input.Type = &insightType
	}
	if severityStr := ctx.Query("severity"); severityStr != "" {
		severity := entity.InsightSeverity(severityStr)
		input.Severity = &severity
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be a positive integer",
			})
			return
		}
		input.Limit = limit
	}

	output, err := c.getInsightsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightListResponse(output.Insights))
}

// GenerateInsights handles POST /insights/generate requests.
// It runs the rule battery on demand and returns only newly created insights.
func (c *InsightController) GenerateInsights(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.generateInsightsUseCase.Execute(ctx.Request.Context(), insight.GenerateInsightsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGenerateInsightsResponse(output.Insights))
}

// MarkRead handles PATCH /insights/:id/read requests.
func (c *InsightController) MarkRead(ctx *gin.Context) {
	userID, insightID, ok := c.insightRequestIDs(ctx)
	if !ok {
		return
	}

	output, err := c.markReadUseCase.Execute(ctx.Request.Context(), insight.MarkReadInput{
		InsightID: insightID,
		UserID:    userID,
	})
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightResponse(output.Insight))
}

// Dismiss handles PATCH /insights/:id/dismiss requests.
func (c *InsightController) Dismiss(ctx *gin.Context) {
	userID, insightID, ok := c.insightRequestIDs(ctx)
	if !ok {
		return
	}

	output, err := c.dismissUseCase.Execute(ctx.Request.Context(), insight.DismissInput{
		InsightID: insightID,
		UserID:    userID,
	})
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightResponse(output.Insight))
}

// insightRequestIDs extracts the authenticated user and the insight path
// parameter, writing the error response itself when either is missing.
func (c *InsightController) insightRequestIDs(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, uuid.Nil, false
	}

	insightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid insight ID format",
			Code:  string(domainerror.ErrCodeInsightNotFound),
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, insightID, true
}

// handleInsightError handles insight errors and returns appropriate HTTP responses.
func (c *InsightController) handleInsightError(ctx *gin.Context, err error) {
	var insErr *domainerror.InsightError
	if errors.As(err, &insErr) {
		statusCode := c.getStatusCodeForInsightError(insErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: insErr.Message,
			Code:  string(insErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForInsightError maps insight error codes to HTTP status codes.
func (c *InsightController) getStatusCodeForInsightError(code domainerror.InsightErrorCode) int {
	switch code {
	case domainerror.ErrCodeInsightNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedInsight:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidInsightType,
		domainerror.ErrCodeInvalidInsightSeverity:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
