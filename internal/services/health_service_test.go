package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcnportal/internal/shared/testutil"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

type fakeLister struct {
	err error
}

func (f fakeLister) List(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{"lookup.xlsx"}, nil
}

func TestHealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	svc := NewHealthService("1.0.0", fakePinger{}, fakeLister{}, logger)

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		blobs      BlobLister
		wantStatus string
	}{
		{
			name:       "all dependencies healthy",
			db:         fakePinger{},
			blobs:      fakeLister{},
			wantStatus: "ready",
		},
		{
			name:       "database down",
			db:         fakePinger{err: errors.New("connection refused")},
			blobs:      fakeLister{},
			wantStatus: "not_ready",
		},
		{
			name:       "blob store down",
			db:         fakePinger{},
			blobs:      fakeLister{err: errors.New("403 forbidden")},
			wantStatus: "not_ready",
		},
		{
			name:       "nothing configured",
			db:         nil,
			blobs:      nil,
			wantStatus: "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			svc := NewHealthService("1.0.0", tt.db, tt.blobs, logger)

			status := svc.ReadinessCheck(context.Background())

			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Contains(t, status.Services, "database")
			assert.Contains(t, status.Services, "blobstore")
		})
	}
}

func TestReadinessCheck_ReportsProbeError(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	svc := NewHealthService("1.0.0", fakePinger{err: errors.New("connection refused")}, fakeLister{}, logger)

	status := svc.ReadinessCheck(context.Background())

	dbHealth, ok := status.Services["database"].(ServiceHealth)
	require.True(t, ok)
	assert.Equal(t, "not_ready", dbHealth.Status)
	assert.Contains(t, dbHealth.Message, "connection refused")
}

func TestLivenessCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	svc := NewHealthService("1.0.0", fakePinger{}, fakeLister{}, logger)

	status := svc.LivenessCheck(context.Background())

	assert.Equal(t, "alive", status.Status)
	require.NotNil(t, status.Runtime)
	assert.Contains(t, status.Runtime, "go_version")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestVersion(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	svc := NewHealthServiceWithBuildInfo("1.0.0", "2024-01-15", "abc123", fakePinger{}, fakeLister{}, logger)

	info := svc.Version()

	assert.Equal(t, "1.0.0", info["version"])
	assert.Equal(t, "2024-01-15", info["build_time"])
	assert.Equal(t, "abc123", info["build_id"])
	assert.Contains(t, info, "go_version")
	assert.Contains(t, info, "start_time")
}
