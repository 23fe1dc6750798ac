// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/usecase/forecast"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/entrypoint/dto"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
)

// ForecastController handles forecast endpoints.
type ForecastController struct {
	generateForecastUseCase    *forecast.GenerateForecastUseCase
	getCategoryForecastUseCase *forecast.GetCategoryForecastUseCase
}

// NewForecastController creates a new forecast controller instance.
func NewForecastController(
	generateForecastUseCase *forecast.GenerateForecastUseCase,
	getCategoryForecastUseCase *forecast.GetCategoryForecastUseCase,
) *ForecastController {
	return &ForecastController{
		generateForecastUseCase:    generateForecastUseCase,
		getCategoryForecastUseCase: getCategoryForecastUseCase,
	}
}

// GetForecast handles GET /analytics/forecast requests.
// An optional months query parameter overrides the default horizon.
func (c *ForecastController) GetForecast(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	horizonMonths := 0
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		months, err := strconv.Atoi(monthsStr)
		if err != nil || months < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "months must be a positive integer",
				Code:  string(domainerror.ErrCodeInvalidForecastHorizon),
			})
			return
		}
		horizonMonths = months
	}

	output, err := c.generateForecastUseCase.Execute(ctx.Request.Context(), forecast.GenerateForecastInput{
		UserID:        userID,
		HorizonMonths: horizonMonths,
	})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	if output.InsufficientData != nil {
		ctx.JSON(http.StatusOK, dto.ToInsufficientDataResponse(output.InsufficientData))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToForecastResponse(output.Result))
}

// GetCategoryForecast handles GET /analytics/forecast/category/:categoryId requests.
func (c *ForecastController) GetCategoryForecast(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("categoryId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeForecastCategoryMissing),
		})
		return
	}

	output, err := c.getCategoryForecastUseCase.Execute(ctx.Request.Context(), forecast.GetCategoryForecastInput{
		UserID:     userID,
		CategoryID: categoryID,
	})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	if output.InsufficientData != nil {
		ctx.JSON(http.StatusOK, dto.ToInsufficientDataResponse(output.InsufficientData))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToForecastResponse(output.Result))
}

// handleForecastError handles forecast errors and returns appropriate HTTP responses.
func (c *ForecastController) handleForecastError(ctx *gin.Context, err error) {
	var fctErr *domainerror.ForecastError
	if errors.As(err, &fctErr) {
		statusCode := c.getStatusCodeForForecastError(fctErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: fctErr.Message,
			Code:  string(fctErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForForecastError maps forecast error codes to HTTP status codes.
func (c *ForecastController) getStatusCodeForForecastError(code domainerror.ForecastErrorCode) int {
	switch code {
	case domainerror.ErrCodeForecastCategoryMissing:
		return http.StatusNotFound
	case domainerror.ErrCodeForecastCategoryNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidForecastHorizon:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
