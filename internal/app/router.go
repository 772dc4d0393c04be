package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/easyeat-pos/easyeat/internal/analytics"
	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/expense"
	"github.com/easyeat-pos/easyeat/internal/insight"
	"github.com/easyeat-pos/easyeat/internal/sales"
	"github.com/easyeat-pos/easyeat/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	CatalogHandler   *catalog.Handler
	SalesHandler     *sales.Handler
	ExpenseHandler   *expense.Handler
	AnalyticsHandler *analytics.Handler
	InsightHandler   *insight.Handler
	JobHandler       *jobs.Handler

	// Analytics may be nil; when set, successful writes invalidate the
	// cached dashboard.
	Analytics *analytics.Service
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	invalidate := invalidateOnWrite(params.Logger, params.Analytics)

	r.Route("/products", func(r chi.Router) {
		r.Use(invalidate)
		params.CatalogHandler.MountRoutes(r)
	})
	r.Route("/sales", func(r chi.Router) {
		r.Use(invalidate)
		params.SalesHandler.MountRoutes(r)
	})
	r.Route("/expenses", func(r chi.Router) {
		r.Use(invalidate)
		params.ExpenseHandler.MountRoutes(r)
	})
	r.Route("/dashboard", params.AnalyticsHandler.MountRoutes)

	if params.InsightHandler != nil {
		limit := 10
		if params.Config != nil && params.Config.InsightRateLimit > 0 {
			limit = params.Config.InsightRateLimit
		}
		r.Route("/insights", func(r chi.Router) {
			r.Use(httprate.Limit(limit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			params.InsightHandler.MountRoutes(r)
		})
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}

// invalidateOnWrite bumps the dashboard cache after any mutating request
// that succeeded.
func invalidateOnWrite(logger *slog.Logger, svc *analytics.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if svc == nil || r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			rec := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(rec, r)
			if rec.Status() >= 200 && rec.Status() < 300 {
				if err := svc.Invalidate(r.Context()); err != nil {
					logger.Warn("dashboard cache invalidation failed", slog.Any("error", err))
				}
			}
		})
	}
}
