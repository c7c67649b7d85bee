package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"pcnportal/internal/services"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

type stubLister struct{ err error }

func (s stubLister) List(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{}, nil
}

func newTestHealthHandler(db services.Pinger, blobs services.BlobLister) *HealthHandler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := services.NewHealthService("1.0.0", db, blobs, logger)
	return NewHealthHandler(svc, logger)
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	handler := newTestHealthHandler(stubPinger{}, stubLister{})

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"version":"1.0.0"`)
}

func TestHealthHandler_ReadinessCheck(t *testing.T) {
	t.Run("ready when dependencies healthy", func(t *testing.T) {
		handler := newTestHealthHandler(stubPinger{}, stubLister{})

		req := httptest.NewRequest("GET", "/api/health/ready", nil)
		rec := httptest.NewRecorder()

		handler.ReadinessCheck(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ready"`)
	})

	t.Run("503 when database unreachable", func(t *testing.T) {
		handler := newTestHealthHandler(stubPinger{err: errors.New("connection refused")}, stubLister{})

		req := httptest.NewRequest("GET", "/api/health/ready", nil)
		rec := httptest.NewRecorder()

		handler.ReadinessCheck(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"not_ready"`)
	})
}

func TestHealthHandler_LivenessCheck(t *testing.T) {
	handler := newTestHealthHandler(stubPinger{}, stubLister{})

	req := httptest.NewRequest("GET", "/api/health/live", nil)
	rec := httptest.NewRecorder()

	handler.LivenessCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"alive"`)
}

func TestHealthHandler_Version(t *testing.T) {
	handler := newTestHealthHandler(stubPinger{}, stubLister{})

	req := httptest.NewRequest("GET", "/api/version", nil)
	rec := httptest.NewRecorder()

	handler.Version(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"1.0.0"`)
	assert.Contains(t, rec.Body.String(), `"go_version"`)
}
