package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"salesdash/internal/services"
	"salesdash/pkg/contracts"
	"salesdash/pkg/contracts/domain"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context, spec domain.FilterSpec) (domain.DashboardView, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).(domain.DashboardView), args.Error(1)
}

func (m *MockDashboardService) Options(ctx context.Context) (domain.FilterOptions, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FilterOptions), args.Error(1)
}

func (m *MockDashboardService) Records(ctx context.Context, spec domain.FilterSpec) ([]domain.StoredRow, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredRow), args.Error(1)
}

type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Create(ctx context.Context, record domain.SalesRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockRecordService) Get(ctx context.Context, index int) (domain.StoredRow, error) {
	args := m.Called(ctx, index)
	return args.Get(0).(domain.StoredRow), args.Error(1)
}

func (m *MockRecordService) Update(ctx context.Context, index int, record domain.SalesRecord) error {
	return m.Called(ctx, index, record).Error(0)
}

func (m *MockRecordService) Delete(ctx context.Context, index int) error {
	return m.Called(ctx, index).Error(0)
}

type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) Predict(ctx context.Context, features domain.FeatureVector) (domain.Prediction, error) {
	args := m.Called(ctx, features)
	return args.Get(0).(domain.Prediction), args.Error(1)
}

func (m *MockPredictionService) PredictFromDate(ctx context.Context, date time.Time, holiday int, temperature, fuelPrice, cpi, unemployment float64) (domain.Prediction, error) {
	args := m.Called(ctx, date, holiday, temperature, fuelPrice, cpi, unemployment)
	return args.Get(0).(domain.Prediction), args.Error(1)
}

func (m *MockPredictionService) Features() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPredictionService) ModelName() string {
	return m.Called().String(0)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) HealthCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) ReadinessCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) LivenessCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) Version() contracts.VersionInfo {
	return m.Called().Get(0).(contracts.VersionInfo)
}
