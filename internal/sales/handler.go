package sales

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/export"
	"github.com/easyeat-pos/easyeat/internal/platform/httpx"
)

// Handler serves the sales API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	catalog  *catalog.Service
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler constructs the sales HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, catalogSvc *catalog.Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		catalog:  catalogSvc,
		validate: validator.New(),
		now:      time.Now,
	}
}

// MountRoutes registers the sales endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/checkout", h.handleCheckout)
	r.Get("/export", h.handleExport)
}

type checkoutLine struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type checkoutRequest struct {
	Items         []checkoutLine `json:"items" validate:"required,min=1,dive"`
	PaymentMethod PaymentMethod  `json:"paymentMethod" validate:"required"`
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	lines := make([]CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		p, err := h.catalog.Get(r.Context(), item.ProductID)
		if err != nil {
			h.respondError(w, "load checkout product", err)
			return
		}
		lines = append(lines, CartLine{Product: p, Quantity: item.Quantity})
	}

	sale, err := h.service.Checkout(r.Context(), lines, req.PaymentMethod)
	if err != nil {
		h.respondError(w, "checkout", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "list sales", err)
		return
	}
	httpx.JSON(w, http.StatusOK, sales)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "export sales", err)
		return
	}
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		parts := make([]string, 0, len(s.Items))
		for _, item := range s.Items {
			parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
		}
		rows = append(rows, []string{
			s.ID,
			s.SoldAt.UTC().Format(time.RFC3339),
			string(s.PaymentMethod),
			strconv.FormatFloat(s.Total, 'f', 2, 64),
			strings.Join(parts, "; "),
		})
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename("sales", h.now())))
	if err := export.Write(w, []string{"id", "date", "paymentMethod", "total", "items"}, rows); err != nil {
		h.logError("write sales csv", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, context string, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, catalog.ErrInsufficientStock):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidPayment):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logError(context, err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
