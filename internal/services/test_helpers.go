package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"salesdash/internal/dataprocessing"
	"salesdash/pkg/contracts/domain"
)

// MockRecordSource is a mock for the dataprocessing.RecordSource interface
type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) Load(ctx context.Context) (*dataprocessing.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataprocessing.Table), args.Error(1)
}

// MockRecordStore is a mock for the RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Append(ctx context.Context, record domain.SalesRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockRecordStore) ReadRow(ctx context.Context, index int) (domain.StoredRow, error) {
	args := m.Called(ctx, index)
	return args.Get(0).(domain.StoredRow), args.Error(1)
}

func (m *MockRecordStore) UpdateRow(ctx context.Context, index int, record domain.SalesRecord) error {
	return m.Called(ctx, index, record).Error(0)
}

func (m *MockRecordStore) DeleteRow(ctx context.Context, index int) error {
	return m.Called(ctx, index).Error(0)
}

// MockPredictor is a mock for the Predictor interface
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	args := m.Called(ctx, features)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPredictor) ModelName() string {
	return m.Called().String(0)
}

func (m *MockPredictor) FeatureNames() []string {
	return m.Called().Get(0).([]string)
}

// MockPinger is a mock for the Pinger interface
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPinger) Backend() string {
	return m.Called().String(0)
}
