package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BlobLister reports whether the blob container is reachable by listing it.
type BlobLister interface {
	List(ctx context.Context) ([]string, error)
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	buildID   string
	db        Pinger
	blobs     BlobLister
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version string, db Pinger, blobs BlobLister, logger *slog.Logger) *HealthService {
	return NewHealthServiceWithBuildInfo(version, "", "", db, blobs, logger)
}

// NewHealthServiceWithBuildInfo creates a new health service with build information
func NewHealthServiceWithBuildInfo(version, buildTime, buildID string, db Pinger, blobs BlobLister, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("build_id", buildID))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		buildID:   buildID,
		db:        db,
		blobs:     blobs,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.Debug("HealthCheck: performing health check",
		slog.String("version", hs.version),
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck returns readiness status, probing the record store and the
// blob container
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	status.Services["database"] = hs.checkDatabaseHealth(ctx)
	status.Services["blobstore"] = hs.checkBlobHealth(ctx)

	allReady := true
	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			allReady = false
			break
		}
	}

	if !allReady {
		status.Status = "not_ready"
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}

	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	if hs.buildID != "" {
		result["build_id"] = hs.buildID
	}

	return result
}

// checkDatabaseHealth pings the record store
func (hs *HealthService) checkDatabaseHealth(ctx context.Context) ServiceHealth {
	if hs.db == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "database not configured",
		}
	}

	if err := hs.db.Ping(ctx); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Database error: %v", err),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: "Database is healthy",
	}
}

// checkBlobHealth lists the blob container
func (hs *HealthService) checkBlobHealth(ctx context.Context) ServiceHealth {
	if hs.blobs == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "blob store not configured",
		}
	}

	if _, err := hs.blobs.List(ctx); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Blob store error: %v", err),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: "Blob store is healthy",
		Uptime:  time.Since(hs.startTime).String(),
	}
}
