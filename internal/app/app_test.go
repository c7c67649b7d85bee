package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcnportal/internal/config"
	"pcnportal/internal/shared/testutil"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	a := &Application{
		Config: config.Default(),
		Logger: logger,
	}
	a.setupRouter()
	a.createServer()
	return a
}

func TestGenerateBuildID(t *testing.T) {
	id := generateBuildID()
	assert.Len(t, id, 12)
	// Deterministic within a day
	assert.Equal(t, id, generateBuildID())
}

func TestGetCORSConfig(t *testing.T) {
	a := newTestApplication(t)

	cfg := a.getCORSConfig()

	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:8080")
	assert.Contains(t, cfg.AllowedMethods, "POST")
	assert.True(t, cfg.AllowCredentials)
}

func TestSetupRouter_MetricsEndpoint(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()

	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestSetupRouter_UnknownRouteIsProblemDocument(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest("GET", "/api/nope", nil)
	rec := httptest.NewRecorder()

	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/not-found")
}

func TestSetupRouter_SecurityHeaders(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest("GET", "/api/nope", nil)
	rec := httptest.NewRecorder()

	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCreateServer(t *testing.T) {
	a := newTestApplication(t)

	require.NotNil(t, a.Server)
	assert.Equal(t, ":8080", a.Server.Addr)
	assert.Equal(t, a.Config.Server.ReadTimeout, a.Server.ReadTimeout)
	assert.Equal(t, a.Config.Server.WriteTimeout, a.Server.WriteTimeout)
}
