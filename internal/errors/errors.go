package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest      = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed    = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrMissingParameter    = New(http.StatusBadRequest, "MISSING_PARAMETER", "Required parameter is missing")
	ErrInvalidParameter    = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")
	ErrMissingSearchFilter = New(http.StatusBadRequest, "MISSING_SEARCH_FILTER", "Provide a ticket number or VRM to search")

	// 404 Not Found
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrPenaltyNotFound  = New(http.StatusNotFound, "PENALTY_NOT_FOUND", "Penalty record not found")
	ErrWorkbookNotFound = New(http.StatusNotFound, "WORKBOOK_NOT_FOUND", "Workbook not found in storage")

	// 409 Conflict
	ErrConflict = New(http.StatusConflict, "CONFLICT", "Resource conflict")

	// 413 Payload Too Large
	ErrFileTooLarge = New(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file exceeds the size limit")

	// 415 Unsupported Media Type
	ErrUnsupportedFileType = New(http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "Only .xlsx and .xls workbooks are accepted")

	// 422 Unprocessable Entity
	ErrUnprocessableEntity = New(http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "Request could not be processed")
	ErrWorkbookCorrupted   = New(http.StatusUnprocessableEntity, "WORKBOOK_CORRUPTED", "Workbook could not be parsed")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrIngestFailed   = New(http.StatusInternalServerError, "INGEST_FAILED", "Workbook ingestion failed")

	// 503 Service Unavailable
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "File storage is temporarily unavailable")
)

// Helper functions for specific error types

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// NotFoundError creates a not found error with details
func NotFoundError(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource), resource)
}

// WorkbookNotFoundError creates a workbook not found error
func WorkbookNotFoundError(fileName string) *APIError {
	return NewWithDetails(http.StatusNotFound, "WORKBOOK_NOT_FOUND", fmt.Sprintf("Workbook %s not found in storage", fileName), fileName)
}

// IngestError creates an ingestion failure error
func IngestError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "INGEST_FAILED", "Workbook ingestion failed", err.Error())
}

// StorageError creates a blob storage error
func StorageError(operation string, err error) *APIError {
	return NewWithDetails(http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", fmt.Sprintf("File storage error during %s", operation), err.Error())
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		ValidationErrors{Errors: errors},
	)
}
