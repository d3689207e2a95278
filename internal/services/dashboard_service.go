package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"salesdash/internal/dataprocessing"
	apperrors "salesdash/internal/errors"
	"salesdash/internal/infrastructure"
	"salesdash/pkg/contracts/domain"
)

// Pipeline view names used in spans and metrics.
const (
	ViewDashboard = "dashboard"
	ViewOptions   = "options"
	ViewRecords   = "records"
)

// DashboardService runs the load, filter and aggregate pipeline. Every call
// reloads the full dataset from the source; nothing is cached between runs.
type DashboardService struct {
	source  dataprocessing.RecordSource
	logger  *slog.Logger
	metrics *infrastructure.SalesMetrics
	tracer  trace.Tracer
}

// NewDashboardService creates a dashboard service over source.
func NewDashboardService(source dataprocessing.RecordSource, logger *slog.Logger, metrics *infrastructure.SalesMetrics) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		source:  source,
		logger:  logger.With(slog.String("service", "dashboard")),
		metrics: metrics,
		tracer:  otel.Tracer(infrastructure.InstrumentationName),
	}
}

// Dashboard returns the totals and the six chart tables for spec. When the
// filter matches nothing the returned view carries the row counts and the
// error is an EmptyResultError.
func (s *DashboardService) Dashboard(ctx context.Context, spec domain.FilterSpec) (domain.DashboardView, error) {
	view := domain.DashboardView{Filter: spec}

	err := s.run(ctx, ViewDashboard, func(ctx context.Context, table *dataprocessing.Table) error {
		filtered := dataprocessing.Apply(table, spec)
		view.LoadedRows = table.Len()
		view.DroppedRows = table.Dropped()

		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int("rows.loaded", table.Len()),
			attribute.Int("rows.filtered", filtered.Len()),
		)

		summary, err := dataprocessing.Summarize(filtered)
		if err != nil {
			return err
		}
		view.Summary = summary
		return nil
	})

	return view, err
}

// Options returns the observed domain of every filter dimension.
func (s *DashboardService) Options(ctx context.Context) (domain.FilterOptions, error) {
	var opts domain.FilterOptions
	err := s.run(ctx, ViewOptions, func(_ context.Context, table *dataprocessing.Table) error {
		opts = dataprocessing.Options(table)
		return nil
	})
	return opts, err
}

// Records returns the filtered dataset with store row numbers. An empty
// match is an empty slice, not an error.
func (s *DashboardService) Records(ctx context.Context, spec domain.FilterSpec) ([]domain.StoredRow, error) {
	var rows []domain.StoredRow
	err := s.run(ctx, ViewRecords, func(_ context.Context, table *dataprocessing.Table) error {
		rows = dataprocessing.Apply(table, spec).Rows()
		return nil
	})
	return rows, err
}

// run loads a fresh table and hands it to fn inside a traced, measured span.
func (s *DashboardService) run(ctx context.Context, view string, fn func(context.Context, *dataprocessing.Table) error) (err error) {
	ctx, span := s.tracer.Start(ctx, "pipeline."+view,
		trace.WithAttributes(attribute.String("pipeline.view", view)))
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordPipelineRun(ctx, view, time.Since(start), err)
		if err != nil && !apperrors.IsType(err, apperrors.ErrTypeEmptyResult) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	table, err := s.source.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load records",
			slog.String("view", view),
			slog.String("error", err.Error()))
		return err
	}

	if err = fn(ctx, table); err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeEmptyResult) {
			s.logger.InfoContext(ctx, "filter matched no rows", slog.String("view", view))
		}
		return err
	}

	s.logger.DebugContext(ctx, "pipeline completed",
		slog.String("view", view),
		slog.Int("rows", table.Len()),
		slog.Duration("duration", time.Since(start)))
	return nil
}
