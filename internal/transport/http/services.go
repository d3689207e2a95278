package http

import (
	"context"
	"time"

	"salesdash/internal/services"
	"salesdash/pkg/contracts"
	"salesdash/pkg/contracts/domain"
)

// DashboardService runs the load, filter and aggregate pipeline.
type DashboardService interface {
	Dashboard(ctx context.Context, spec domain.FilterSpec) (domain.DashboardView, error)
	Options(ctx context.Context) (domain.FilterOptions, error)
	Records(ctx context.Context, spec domain.FilterSpec) ([]domain.StoredRow, error)
}

// RecordService edits single rows of the record store.
type RecordService interface {
	Create(ctx context.Context, record domain.SalesRecord) error
	Get(ctx context.Context, index int) (domain.StoredRow, error)
	Update(ctx context.Context, index int, record domain.SalesRecord) error
	Delete(ctx context.Context, index int) error
}

// PredictionService calls the loaded model.
type PredictionService interface {
	Predict(ctx context.Context, features domain.FeatureVector) (domain.Prediction, error)
	PredictFromDate(ctx context.Context, date time.Time, holiday int, temperature, fuelPrice, cpi, unemployment float64) (domain.Prediction, error)
	Features() ([]string, error)
	ModelName() string
}

// HealthService reports process and dependency health.
type HealthService interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() contracts.VersionInfo
}

var (
	_ DashboardService  = (*services.DashboardService)(nil)
	_ RecordService     = (*services.RecordService)(nil)
	_ PredictionService = (*services.PredictionService)(nil)
	_ HealthService     = (*services.HealthService)(nil)
)
