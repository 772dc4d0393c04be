package analytics

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easyeat-pos/easyeat/internal/platform/httpx"
)

// Handler serves the dashboard API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the analytics HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the dashboard endpoints. The section endpoints carve
// out slices of the same cached dashboard the index serves.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleDashboard)
	r.Get("/summary", h.section(func(d Dashboard) any { return d.Summary }))
	r.Get("/sales", h.section(func(d Dashboard) any { return d.DailySales }))
	r.Get("/expenses", h.section(func(d Dashboard) any { return d.ExpensesByGroup }))
	r.Get("/profitability", h.section(func(d Dashboard) any { return d.Profitability }))
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, dash)
}

func (h *Handler) section(pick func(Dashboard) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dash, ok := h.load(w, r)
		if !ok {
			return
		}
		httpx.JSON(w, http.StatusOK, pick(dash))
	}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (Dashboard, bool) {
	period := Period(r.URL.Query().Get("period"))
	if period == "" {
		period = Period7D
	}
	if !period.Valid() {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "period must be one of 7d, 30d, all")
		return Dashboard{}, false
	}
	dash, err := h.service.Dashboard(r.Context(), period)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("build dashboard", slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return Dashboard{}, false
	}
	return dash, true
}
