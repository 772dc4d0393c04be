package insight

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/easyeat-pos/easyeat/internal/platform/httpx"
)

// Handler serves the insight API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the insight HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers the insight endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/query", h.handleQuery)
	r.Post("/forecast", h.handleRefreshForecast)
	r.Get("/forecast/latest", h.handleLatestForecast)
}

type queryRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	answer, err := h.service.Ask(r.Context(), req.Question)
	if err != nil {
		h.respondError(w, "ask insight", err)
		return
	}
	httpx.JSON(w, http.StatusOK, answer)
}

func (h *Handler) handleRefreshForecast(w http.ResponseWriter, r *http.Request) {
	forecast, err := h.service.RefreshForecast(r.Context())
	if err != nil {
		h.respondError(w, "refresh forecast", err)
		return
	}
	httpx.JSON(w, http.StatusOK, forecast)
}

func (h *Handler) handleLatestForecast(w http.ResponseWriter, r *http.Request) {
	forecast, ok, err := h.service.LatestForecast(r.Context())
	if err != nil {
		h.respondError(w, "load forecast", err)
		return
	}
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no forecast generated yet")
		return
	}
	httpx.JSON(w, http.StatusOK, forecast)
}

func (h *Handler) respondError(w http.ResponseWriter, context string, err error) {
	if errors.Is(err, ErrUnavailable) {
		httpx.Problem(w, http.StatusBadGateway, "Assistant Unavailable", err.Error())
		return
	}
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
