package predict

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "salesdash/internal/errors"
	"salesdash/internal/infrastructure"
	"salesdash/pkg/contracts/domain"
)

// Adapter serves point predictions from a loaded model. It is safe for
// concurrent use; the model is never modified after load.
type Adapter struct {
	model   *Model
	logger  *slog.Logger
	metrics *infrastructure.SalesMetrics
	tracer  trace.Tracer
}

// NewAdapter wraps model.
func NewAdapter(model *Model, logger *slog.Logger, metrics *infrastructure.SalesMetrics) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		model:   model,
		logger:  logger.With(slog.String("component", "predictor"), slog.String("model", model.Name)),
		metrics: metrics,
		tracer:  otel.Tracer(infrastructure.InstrumentationName),
	}
}

// ModelName returns the name of the loaded model.
func (a *Adapter) ModelName() string {
	return a.model.Name
}

// FeatureNames returns the names the model was trained with, in artifact order.
func (a *Adapter) FeatureNames() []string {
	return append([]string(nil), a.model.FeatureNames...)
}

// Predict returns the model output for features. The feature set must match
// the model's declared names exactly; there are no defaults.
func (a *Adapter) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	ctx, span := a.tracer.Start(ctx, "predict",
		trace.WithAttributes(
			attribute.String("model.name", a.model.Name),
			attribute.String("model.kind", string(a.model.Kind)),
		))
	defer span.End()

	if err := a.check(features); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid features")
		a.metrics.RecordPrediction(ctx, a.model.Name, err)
		a.logger.DebugContext(ctx, "prediction rejected", slog.String("error", err.Error()))
		return 0, err
	}

	y := a.model.evaluate(features)

	a.metrics.RecordPrediction(ctx, a.model.Name, nil)
	span.SetAttributes(attribute.Float64("prediction.value", y))
	a.logger.DebugContext(ctx, "prediction served", slog.Float64("weekly_sales", y))

	return y, nil
}

func (a *Adapter) check(features domain.FeatureVector) error {
	declared := make(map[string]struct{}, len(a.model.FeatureNames))
	var missing []string
	for _, name := range a.model.FeatureNames {
		declared[name] = struct{}{}
		if _, ok := features[name]; !ok {
			missing = append(missing, name)
		}
	}

	var unexpected []string
	for _, name := range features.Names() {
		if _, ok := declared[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}

	if len(missing) > 0 || len(unexpected) > 0 {
		return apperrors.NewPredictionInputError(missing, unexpected)
	}

	for _, name := range a.model.FeatureNames {
		if v := features[name]; math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.NewAppError(apperrors.ErrTypePredictionInput,
				fmt.Sprintf("feature %s is not a finite number", name), nil).
				WithContext(apperrors.ContextColumn, name)
		}
	}
	return nil
}
