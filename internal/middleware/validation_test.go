package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "pcnportal/internal/errors"
)

func newTestValidation(t *testing.T) *ValidationMiddleware {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewValidationMiddleware(logger, apierrors.NewErrorHandler(logger, false))
}

func TestValidateStruct(t *testing.T) {
	type uploadForm struct {
		FileName string `json:"fileName" validate:"required,filename"`
		VRM      string `json:"vrm" validate:"omitempty,vrm"`
	}

	vm := newTestValidation(t)

	tests := []struct {
		name    string
		input   uploadForm
		wantErr string
	}{
		{"valid", uploadForm{FileName: "fines.xlsx", VRM: "AB12 CDE"}, ""},
		{"missing filename", uploadForm{VRM: "AB12CDE"}, "fileName is required"},
		{"traversal filename", uploadForm{FileName: "../etc/passwd"}, "must be a valid filename"},
		{"path separator", uploadForm{FileName: "dir/fines.xlsx"}, "must be a valid filename"},
		{"vrm with punctuation", uploadForm{FileName: "fines.xlsx", VRM: "AB-12!"}, "vehicle registration mark"},
		{"vrm too short", uploadForm{FileName: "fines.xlsx", VRM: "A"}, "vehicle registration mark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := vm.ValidateStruct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			apiErr, ok := err.(*apierrors.APIError)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)

			details, ok := apiErr.Details.(apierrors.ValidationErrors)
			require.True(t, ok)
			require.NotEmpty(t, details.Errors)
			assert.Contains(t, details.Errors[0].Message, tt.wantErr)
		})
	}
}

func TestContentTypeValidator(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := ContentTypeValidator("multipart/form-data")(next)

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"accepted multipart", http.MethodPost, "multipart/form-data; boundary=xyz", http.StatusOK},
		{"get skips the check", http.MethodGet, "", http.StatusOK},
		{"missing content type", http.MethodPost, "", http.StatusBadRequest},
		{"wrong content type", http.MethodPost, "application/json", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/penalties/upload", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus >= 400 {
				assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestProblemFromStatus(t *testing.T) {
	p := ProblemFromStatus(http.StatusTooManyRequests, "Rate limit exceeded", "trace-1")
	assert.Equal(t, "/errors/rate-limit-exceeded", p.Type)
	assert.Equal(t, "Too Many Requests", p.Title)
	assert.Equal(t, "trace-1", p.Trace)

	p = ProblemFromStatus(http.StatusTeapot, "", "")
	assert.Equal(t, "/errors/unknown", p.Type)
	assert.True(t, strings.HasPrefix(p.Title, "I'm a teapot"))
}
