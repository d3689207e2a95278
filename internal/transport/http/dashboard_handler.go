package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salesdash/internal/errors"
	"salesdash/internal/exporter"
	api "salesdash/pkg/contracts/api/v1"
)

// Export kinds accepted by GET /dashboard/export.
const (
	ExportRecords = "records"
	ExportSummary = "summary"
)

// DashboardHandler serves the filtered dashboard views.
type DashboardHandler struct {
	service      DashboardService
	exporter     *exporter.SalesExporter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, exp *exporter.SalesExporter, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		exporter:     exp,
		logger:       logger.With(slog.String("handler", "dashboard")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Get("/options", h.GetOptions)
	r.Get("/records", h.GetRecords)
	r.Get("/export", h.Export)
	return r
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Dashboard(r.Context(), spec)
	if err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.JSON(w, r, api.Success(view))
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	render.JSON(w, r, api.Success(opts))
}

// GetRecords handles GET /api/dashboard/records
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Records(r.Context(), spec)
	if err != nil {
		h.errorHandler.HandleError(w, r, translate(err))
		return
	}

	out := make([]api.RecordResponse, len(rows))
	for i, row := range rows {
		out[i] = api.NewRecordResponse(row)
	}
	render.JSON(w, r, api.List(out, len(out)))
}

// Export handles GET /api/dashboard/export?kind=records|summary
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = ExportRecords
	}

	switch kind {
	case ExportRecords:
		rows, err := h.service.Records(r.Context(), spec)
		if err != nil {
			h.errorHandler.HandleError(w, r, translate(err))
			return
		}
		setAttachment(w, "sales_records.csv")
		if err := h.exporter.WriteRecords(w, rows); err != nil {
			h.logExportFailure(r, kind, err)
		}

	case ExportSummary:
		view, err := h.service.Dashboard(r.Context(), spec)
		if err != nil {
			h.errorHandler.HandleError(w, r, translate(err))
			return
		}
		setAttachment(w, "sales_summary.csv")
		if err := h.exporter.WriteSummary(w, view.Summary); err != nil {
			h.logExportFailure(r, kind, err)
		}

	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("kind",
			fmt.Sprintf("kind must be one of: %s, %s", ExportRecords, ExportSummary)))
	}
}

// logExportFailure records a write error. Headers are already sent, so the
// client only sees a truncated file.
func (h *DashboardHandler) logExportFailure(r *http.Request, kind string, err error) {
	h.logger.ErrorContext(r.Context(), "csv export failed",
		slog.String("kind", kind),
		slog.String("error", err.Error()))
}

func setAttachment(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
}
