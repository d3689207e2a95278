package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Render(t *testing.T) {
	tests := []struct {
		name       string
		apiError   *APIError
		wantStatus int
	}{
		{"bad request", ErrInvalidRequest, http.StatusBadRequest},
		{"rate limited", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"predictor unavailable", ErrPredictorUnavailable, http.StatusServiceUnavailable},
		{"read only", ErrRecordsReadOnly, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			require.NoError(t, render.Render(w, r, tt.apiError))
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.apiError.ErrorCode, body["error_code"])
			assert.Equal(t, tt.apiError.Message, tt.apiError.Error())
		})
	}
}

func TestInvalidRequestWithError(t *testing.T) {
	err := InvalidRequestWithError(stderrors.New("unexpected token"))

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
	assert.Equal(t, "unexpected token", err.Details)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("quarter", "quarter must be between 1 and 4")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)
	assert.Equal(t, ValidationError{Field: "quarter", Message: "quarter must be between 1 and 4"}, err.Details)
}

func TestNewValidationErrors(t *testing.T) {
	fields := []ValidationError{
		{Field: "store", Message: "store is required"},
		{Field: "cpi", Message: "cpi must be at least 0"},
	}

	err := NewValidationErrors(fields)

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	details, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Equal(t, fields, details.Errors)

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{
		"status_code": 400,
		"error_code": "VALIDATION_FAILED",
		"message": "Request validation failed",
		"details": {"errors": [
			{"field": "store", "message": "store is required"},
			{"field": "cpi", "message": "cpi must be at least 0"}
		]}
	}`, string(data))
}

func TestAPIError_WithDetailsCopies(t *testing.T) {
	err := ErrValidation("store", "store is required")

	assert.Nil(t, ErrValidationFailed.Details)
	assert.Equal(t, ErrValidationFailed.ErrorCode, err.ErrorCode)
	assert.NotSame(t, ErrValidationFailed, err)
}
