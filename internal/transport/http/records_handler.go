package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salesdash/internal/errors"
	"salesdash/internal/middleware"
	api "salesdash/pkg/contracts/api/v1"
)

type rowKey struct{}

// RecordsHandler serves row-level CRUD on the record store.
type RecordsHandler struct {
	service      RecordService
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(service RecordService, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RecordsHandler {
	return &RecordsHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("handler", "records")),
		errorHandler: errorHandler,
	}
}

// Routes returns the record routes
func (h *RecordsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Route("/{row}", func(r chi.Router) {
		r.Use(h.RowCtx)
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
	return r
}

// RowCtx parses the {row} parameter. Range checks are left to the store so
// that every out-of-range index reports the same way.
func (h *RecordsHandler) RowCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		row, err := strconv.Atoi(chi.URLParam(r, "row"))
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("row", "row must be an integer sheet row number"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), rowKey{}, row)))
	})
}

func rowFrom(r *http.Request) int {
	row, _ := r.Context().Value(rowKey{}).(int)
	return row
}

// Create handles POST /api/records
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.RecordRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	record, err := req.ToRecord()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", err.Error()))
		return
	}

	if err := h.service.Create(r.Context(), record); err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.Success(api.MutationResponse{
		Operation: "create",
		Message:   "record appended",
	}))
}

// Get handles GET /api/records/{row}
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	row, err := h.service.Get(r.Context(), rowFrom(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.JSON(w, r, api.Success(api.NewRecordResponse(row)))
}

// Update handles PUT /api/records/{row}
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req api.RecordRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	record, err := req.ToRecord()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", err.Error()))
		return
	}

	row := rowFrom(r)
	if err := h.service.Update(r.Context(), row, record); err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.JSON(w, r, api.Success(api.MutationResponse{
		Operation: "update",
		Row:       row,
		Message:   "record updated",
	}))
}

// Delete handles DELETE /api/records/{row}
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	row := rowFrom(r)
	if err := h.service.Delete(r.Context(), row); err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.JSON(w, r, api.Success(api.MutationResponse{
		Operation: "delete",
		Row:       row,
		Message:   "record deleted; later rows moved up by one",
	}))
}
