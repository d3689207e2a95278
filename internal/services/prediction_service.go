package services

import (
	"context"
	"log/slog"
	"time"

	"salesdash/internal/predict"
	"salesdash/pkg/contracts/domain"
)

// Predictor produces a point estimate for a feature vector.
type Predictor interface {
	Predict(ctx context.Context, features domain.FeatureVector) (float64, error)
	ModelName() string
	FeatureNames() []string
}

// PredictionService wraps the loaded model for the transport layer.
type PredictionService struct {
	predictor Predictor
	logger    *slog.Logger
}

// NewPredictionService creates a prediction service. A nil predictor makes
// every call fail with ErrNoModel.
func NewPredictionService(predictor Predictor, logger *slog.Logger) *PredictionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PredictionService{
		predictor: predictor,
		logger:    logger.With(slog.String("service", "prediction")),
	}
}

// Predict runs the model on a caller-supplied feature vector.
func (s *PredictionService) Predict(ctx context.Context, features domain.FeatureVector) (domain.Prediction, error) {
	if s.predictor == nil {
		return domain.Prediction{}, ErrNoModel
	}

	y, err := s.predictor.Predict(ctx, features)
	if err != nil {
		s.logger.InfoContext(ctx, "prediction rejected", slog.String("error", err.Error()))
		return domain.Prediction{}, err
	}

	return domain.Prediction{
		WeeklySales: y,
		Model:       s.predictor.ModelName(),
		Features:    features,
	}, nil
}

// PredictFromDate derives the calendar features from date and predicts.
func (s *PredictionService) PredictFromDate(ctx context.Context, date time.Time, holiday int, temperature, fuelPrice, cpi, unemployment float64) (domain.Prediction, error) {
	return s.Predict(ctx, predict.BuildFeatures(date, holiday, temperature, fuelPrice, cpi, unemployment))
}

// Features lists the feature names the model expects.
func (s *PredictionService) Features() ([]string, error) {
	if s.predictor == nil {
		return nil, ErrNoModel
	}
	return s.predictor.FeatureNames(), nil
}

// ModelName names the loaded model, empty when none is configured.
func (s *PredictionService) ModelName() string {
	if s.predictor == nil {
		return ""
	}
	return s.predictor.ModelName()
}
