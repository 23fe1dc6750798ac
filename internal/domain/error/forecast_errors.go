// Package error defines domain-specific errors for the SpendLens application.
package error

import "errors"

// Forecast domain errors.
var (
	// ErrForecastStorageUnavailable is returned when the durable store cannot
	// be read during forecast retrieval.
	ErrForecastStorageUnavailable = errors.New("forecast storage unavailable")

	// ErrInvalidForecastHorizon is returned when the requested horizon is not positive.
	ErrInvalidForecastHorizon = errors.New("forecast horizon must be at least one month")

	// ErrCategoryNotFoundForForecast is returned when the category does not exist.
	ErrCategoryNotFoundForForecast = errors.New("category not found")

	// ErrCategoryNotOwnedForForecast is returned when the category belongs to another user.
	ErrCategoryNotOwnedForForecast = errors.New("category does not belong to user")
)

// ForecastErrorCode defines error codes for forecast errors.
// Format: FCT-XXYYYY where XX is category and YYYY is specific error.
type ForecastErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidForecastHorizon   ForecastErrorCode = "FCT-010001"
	ErrCodeForecastCategoryMissing  ForecastErrorCode = "FCT-010002"
	ErrCodeForecastCategoryNotOwned ForecastErrorCode = "FCT-010003"

	// Storage errors (02XXXX)
	ErrCodeForecastStorage ForecastErrorCode = "FCT-020001"
)

// ForecastError represents a forecast error with code and message.
type ForecastError struct {
	Code    ForecastErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ForecastError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ForecastError) Unwrap() error {
	return e.Err
}

// NewForecastError creates a new ForecastError with the given code and message.
func NewForecastError(code ForecastErrorCode, message string, err error) *ForecastError {
	return &ForecastError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
