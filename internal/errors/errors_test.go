package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorMessage(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
	assert.Nil(t, err.Details)
}

func TestNewWithDetails(t *testing.T) {
	err := NewWithDetails(http.StatusNotFound, "NOT_FOUND", "gone", "penalties.xlsx")
	assert.Equal(t, "penalties.xlsx", err.Details)
}

func TestErrorCatalog(t *testing.T) {
	tests := []struct {
		err    *APIError
		status int
		code   string
	}{
		{ErrMissingSearchFilter, http.StatusBadRequest, "MISSING_SEARCH_FILTER"},
		{ErrValidationFailed, http.StatusBadRequest, "VALIDATION_FAILED"},
		{ErrPenaltyNotFound, http.StatusNotFound, "PENALTY_NOT_FOUND"},
		{ErrWorkbookNotFound, http.StatusNotFound, "WORKBOOK_NOT_FOUND"},
		{ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{ErrUnsupportedFileType, http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE"},
		{ErrWorkbookCorrupted, http.StatusUnprocessableEntity, "WORKBOOK_CORRUPTED"},
		{ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{ErrIngestFailed, http.StatusInternalServerError, "INGEST_FAILED"},
		{ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.code, tt.err.ErrorCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("vrm", "VRM must be 2 to 10 alphanumeric characters")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)

	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "vrm", detail.Field)
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "fileName", Message: "fileName is required"},
		{Field: "vrm", Message: "invalid VRM"},
	})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	detail, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, detail.Errors, 2)
}

func TestWorkbookNotFoundError(t *testing.T) {
	err := WorkbookNotFoundError("pcn-lookup.xlsx")

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "WORKBOOK_NOT_FOUND", err.ErrorCode)
	assert.Contains(t, err.Message, "pcn-lookup.xlsx")
	assert.Equal(t, "pcn-lookup.xlsx", err.Details)
}

func TestIngestAndStorageErrors(t *testing.T) {
	ingest := IngestError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, ingest.StatusCode)
	assert.Equal(t, "INGEST_FAILED", ingest.ErrorCode)
	assert.Equal(t, assert.AnError.Error(), ingest.Details)

	storage := StorageError("upload", assert.AnError)
	assert.Equal(t, http.StatusServiceUnavailable, storage.StatusCode)
	assert.Equal(t, "STORAGE_UNAVAILABLE", storage.ErrorCode)
	assert.Contains(t, storage.Message, "upload")
}
