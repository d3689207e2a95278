package infrastructure

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SalesMetrics holds all application-specific instruments. A nil
// *SalesMetrics is valid and records nothing.
type SalesMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Pipeline metrics
	PipelineRuns     metric.Int64Counter
	PipelineDuration metric.Float64Histogram
	RowsLoaded       metric.Int64Counter
	RowsDropped      metric.Int64Counter

	// Record store metrics
	StoreOperations        metric.Int64Counter
	StoreOperationDuration metric.Float64Histogram

	// Predictor metrics
	Predictions metric.Int64Counter
}

// CreateSalesMetrics registers the application instruments on meter.
func CreateSalesMetrics(meter metric.Meter) (*SalesMetrics, error) {
	m := &SalesMetrics{}
	var err error

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.PipelineRuns, err = meter.Int64Counter(
		"sales_pipeline_runs_total",
		metric.WithDescription("Total number of dashboard pipeline runs"),
	); err != nil {
		return nil, err
	}

	if m.PipelineDuration, err = meter.Float64Histogram(
		"sales_pipeline_duration_seconds",
		metric.WithDescription("Load, filter and aggregate duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.RowsLoaded, err = meter.Int64Counter(
		"sales_rows_loaded_total",
		metric.WithDescription("Total number of sales rows loaded into tables"),
	); err != nil {
		return nil, err
	}

	if m.RowsDropped, err = meter.Int64Counter(
		"sales_rows_dropped_total",
		metric.WithDescription("Total number of unparseable sales rows skipped"),
	); err != nil {
		return nil, err
	}

	if m.StoreOperations, err = meter.Int64Counter(
		"store_operations_total",
		metric.WithDescription("Total number of record store calls"),
	); err != nil {
		return nil, err
	}

	if m.StoreOperationDuration, err = meter.Float64Histogram(
		"store_operation_duration_seconds",
		metric.WithDescription("Record store call duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.Predictions, err = meter.Int64Counter(
		"sales_predictions_total",
		metric.WithDescription("Total number of weekly sales predictions"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordPipelineRun counts one dashboard computation.
func (m *SalesMetrics) RecordPipelineRun(ctx context.Context, view string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("view", view),
		attribute.String("status", outcome(err)),
	)
	m.PipelineRuns.Add(ctx, 1, attrs)
	m.PipelineDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordLoad counts rows accepted and rows skipped by one table load.
func (m *SalesMetrics) RecordLoad(ctx context.Context, source string, loaded, dropped int) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("source", source))
	m.RowsLoaded.Add(ctx, int64(loaded), attrs)
	m.RowsDropped.Add(ctx, int64(dropped), attrs)
}

// RecordStoreOperation counts one record store call.
func (m *SalesMetrics) RecordStoreOperation(ctx context.Context, backend, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("operation", operation),
		attribute.String("status", outcome(err)),
	)
	m.StoreOperations.Add(ctx, 1, attrs)
	m.StoreOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordPrediction counts one predictor invocation.
func (m *SalesMetrics) RecordPrediction(ctx context.Context, model string, err error) {
	if m == nil {
		return
	}

	m.Predictions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("status", outcome(err)),
	))
}

// codedError is satisfied by the application error taxonomy.
type codedError interface {
	Code() string
}

// outcome labels err by its error code, or "success".
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var coded codedError
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return "error"
}
