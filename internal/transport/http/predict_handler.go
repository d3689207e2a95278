package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salesdash/internal/errors"
	"salesdash/internal/middleware"
	api "salesdash/pkg/contracts/api/v1"
	"salesdash/pkg/contracts/domain"
)

// PredictHandler serves point predictions from the loaded model.
type PredictHandler struct {
	service      PredictionService
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(service PredictionService, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PredictHandler {
	return &PredictHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("handler", "predict")),
		errorHandler: errorHandler,
	}
}

// Routes returns the predict routes
func (h *PredictHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Predict)
	r.Post("/from-date", h.PredictFromDate)
	r.Get("/model", h.Model)
	return r
}

// Predict handles POST /api/predict
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req api.PredictRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	prediction, err := h.service.Predict(r.Context(), domain.FeatureVector(req.Features))
	if err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.JSON(w, r, api.Success(prediction))
}

// PredictFromDate handles POST /api/predict/from-date
func (h *PredictHandler) PredictFromDate(w http.ResponseWriter, r *http.Request) {
	var req api.PredictFromDateRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", err.Error()))
		return
	}

	prediction, err := h.service.PredictFromDate(r.Context(), date,
		*req.HolidayFlag, *req.Temperature, *req.FuelPrice, *req.CPI, *req.Unemployment)
	if err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.JSON(w, r, api.Success(prediction))
}

// Model handles GET /api/predict/model
func (h *PredictHandler) Model(w http.ResponseWriter, r *http.Request) {
	features, err := h.service.Features()
	if err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.JSON(w, r, api.Success(api.ModelResponse{
		Model:    h.service.ModelName(),
		Features: features,
	}))
}
