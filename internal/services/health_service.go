package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"salesdash/pkg/contracts"
)

// Pinger is a backend the readiness probe can reach.
type Pinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

// HealthService provides health check functionality
type HealthService struct {
	version     string
	store       Pinger
	model       string
	pingTimeout time.Duration
	startTime   time.Time
	logger      *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. model is the loaded model name,
// empty when none is configured.
func NewHealthService(version string, store Pinger, model string, pingTimeout time.Duration, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	return &HealthService{
		version:     version,
		store:       store,
		model:       model,
		pingTimeout: pingTimeout,
		startTime:   time.Now(),
		logger:      logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck pings the record store and reports the model state.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"store": hs.checkStore(ctx),
			"model": hs.checkModel(),
		},
	}

	if status.Services["store"].Status != "ready" {
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
func (hs *HealthService) Version() contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	if hs.version != "" {
		info.Version = hs.version
	}
	return info
}

func (hs *HealthService) checkStore(ctx context.Context) ServiceHealth {
	if hs.store == nil {
		return ServiceHealth{Status: "not_ready", Message: "record store not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, hs.pingTimeout)
	defer cancel()

	if err := hs.store.Ping(ctx); err != nil {
		hs.logger.WarnContext(ctx, "record store ping failed",
			slog.String("backend", hs.store.Backend()),
			slog.String("error", err.Error()))
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("%s store unreachable: %v", hs.store.Backend(), err),
		}
	}

	return ServiceHealth{Status: "ready", Message: hs.store.Backend() + " store is reachable"}
}

func (hs *HealthService) checkModel() ServiceHealth {
	if hs.model == "" {
		return ServiceHealth{Status: "disabled", Message: "no prediction model configured"}
	}
	return ServiceHealth{Status: "ready", Message: "model " + hs.model + " loaded"}
}
