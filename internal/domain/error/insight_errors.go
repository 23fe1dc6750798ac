// Package error defines domain-specific errors for the SpendLens application.
package error

import "errors"

// Insight domain errors.
var (
	// ErrInsightNotFound is returned when an insight is not found in the system.
	ErrInsightNotFound = errors.New("insight not found")

	// ErrNotAuthorizedToModifyInsight is returned when an insight belongs to another user.
	ErrNotAuthorizedToModifyInsight = errors.New("not authorized to modify insight")

	// ErrInvalidInsightType is returned when an unknown insight type filter is requested.
	ErrInvalidInsightType = errors.New("invalid insight type")

	// ErrInvalidInsightSeverity is returned when an unknown severity filter is requested.
	ErrInvalidInsightSeverity = errors.New("invalid insight severity")

	// ErrInsightStorageUnavailable is returned when the durable store cannot
	// be read during insight retrieval.
	ErrInsightStorageUnavailable = errors.New("insight storage unavailable")
)

// InsightErrorCode defines error codes for insight errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInsightNotFound        InsightErrorCode = "INS-010001"
	ErrCodeNotAuthorizedInsight   InsightErrorCode = "INS-010002"
	ErrCodeInvalidInsightType     InsightErrorCode = "INS-010003"
	ErrCodeInvalidInsightSeverity InsightErrorCode = "INS-010004"

	// Storage errors (02XXXX)
	ErrCodeInsightStorage InsightErrorCode = "INS-020001"
)

// InsightError represents an insight error with code and message.
type InsightError struct {
	Code    InsightErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InsightError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError creates a new InsightError with the given code and message.
func NewInsightError(code InsightErrorCode, message string, err error) *InsightError {
	return &InsightError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
