package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/infrastructure"
	"salesdash/internal/shared/testutil"
)

func TestNewErrorHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	handler := NewErrorHandler(logger, true)

	assert.NotNil(t, handler)
	assert.True(t, handler.includeStack)
	assert.NotNil(t, handler.logger)
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
	}{
		{
			name:       "nil error writes nothing",
			err:        nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "context deadline",
			err:        fmt.Errorf("load: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "store connection",
			err:        NewStoreConnectionError("open spreadsheet", errors.New("dial tcp")),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeStoreUnavailable,
			wantCode:   "STORE_CONNECTION",
		},
		{
			name:       "store access",
			err:        NewStoreAccessError("delete row", errors.New("googleapi: Error 403")),
			wantStatus: http.StatusBadGateway,
			wantType:   TypeStoreAccess,
			wantCode:   "STORE_ACCESS",
		},
		{
			name:       "row out of range",
			err:        NewRowOutOfRangeError("read row", 1),
			wantStatus: http.StatusNotFound,
			wantType:   TypeRowOutOfRange,
			wantCode:   "STORE_ACCESS",
		},
		{
			name:       "data parse",
			err:        NewDataParseError(4, "Date", errors.New("bad")),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDataParse,
			wantCode:   "DATA_PARSE",
		},
		{
			name:       "empty result",
			err:        fmt.Errorf("summarize: %w", NewEmptyResultError()),
			wantStatus: http.StatusNotFound,
			wantType:   TypeEmptyResult,
			wantCode:   "EMPTY_RESULT",
		},
		{
			name:       "prediction input",
			err:        NewPredictionInputError([]string{"day_of_week"}, nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypePredictionInput,
			wantCode:   "PREDICTION_INPUT",
		},
		{
			name:       "validation api error",
			err:        ErrValidation("store", "store must be All or a number"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "predictor unavailable",
			err:        ErrPredictorUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeServiceDown,
			wantCode:   "PREDICTOR_UNAVAILABLE",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-123"))
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Empty(t, rec.Body.String())
				return
			}

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "trace-123", body["trace_id"])
			assert.Equal(t, "/api/dashboard", body["instance"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
		})
	}
}

func TestErrorHandler_PredictionInputExtensions(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	req := httptest.NewRequest(http.MethodPost, "/api/predict", nil)

	problem := handler.ErrorToProblem(NewPredictionInputError([]string{"day_of_week"}, []string{"store"}), req)

	assert.Equal(t, []string{"day_of_week"}, problem.Extensions["missing"])
	assert.Equal(t, []string{"store"}, problem.Extensions["unexpected"])
}

func TestErrorHandler_EmptyResultKeepsNotice(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	problem := handler.ErrorToProblem(NewEmptyResultError(), req)

	assert.Equal(t, "No data available for the selected filters.", problem.Detail)
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, true)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.HandlePanic(rec, req, "nil map write")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "nil map write")
	assert.True(t, logs.ContainsMessage("panic recovered"))
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPatch, "/api/records/2", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "PATCH")
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", "/x").
		WithExtension("error_code", "NOT_FOUND")

	data, err := json.Marshal(problem)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"/errors/not-found","title":"Not Found","status":404,"instance":"/x","error_code":"NOT_FOUND"}`, string(data))
}
