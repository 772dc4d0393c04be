package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/easyeat-pos/easyeat/internal/analytics"
	"github.com/easyeat-pos/easyeat/internal/app"
	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/expense"
	"github.com/easyeat-pos/easyeat/internal/insight"
	"github.com/easyeat-pos/easyeat/internal/mockdata"
	"github.com/easyeat-pos/easyeat/internal/platform/cache"
	"github.com/easyeat-pos/easyeat/internal/platform/db"
	"github.com/easyeat-pos/easyeat/internal/sales"
	"github.com/easyeat-pos/easyeat/jobs"
)

// repositories bundles the storage backend picked at startup.
type repositories struct {
	catalog catalog.RepositoryPort
	sales   sales.RepositoryPort
	expense expense.RepositoryPort
}

// connectStores prefers PostgreSQL and falls back to seeded in-memory stores
// when the database is unreachable. The fallback keeps the registers selling;
// data written there is lost on restart, so the switch is logged loudly.
func connectStores(ctx context.Context, cfg *app.Config, logger *slog.Logger) (repositories, *pgxpool.Pool) {
	pool, err := db.New(ctx, cfg.PGDSN)
	if err == nil {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Error("run migrations", slog.Any("error", err))
			pool.Close()
			pool = nil
		}
	} else {
		logger.Warn("postgres unreachable", slog.Any("error", err))
		pool = nil
	}

	if pool != nil {
		return repositories{
			catalog: catalog.NewRepository(pool),
			sales:   sales.NewRepository(pool),
			expense: expense.NewRepository(pool),
		}, pool
	}

	logger.Warn("falling back to in-memory stores; all writes are volatile")
	now := time.Now()
	products := catalog.NewMemoryRepository(mockdata.Products(now))
	return repositories{
		catalog: products,
		sales:   sales.NewMemoryRepository(products, mockdata.Sales(now)),
		expense: expense.NewMemoryRepository(mockdata.Expenses(now)),
	}, nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	repos, pool := connectStores(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	var redisClient *goredis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unreachable, caching disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	catalogService := catalog.NewService(repos.catalog)
	salesService := sales.NewService(repos.sales)
	expenseService := expense.NewService(repos.expense)

	var analyticsCache *analytics.Cache
	if redisClient != nil {
		analyticsCache = analytics.NewCache(redisClient, cfg.DashboardCacheTTL)
		if err := analyticsCache.ListenForInvalidation(ctx); err != nil {
			logger.Warn("cache invalidation listener", slog.Any("error", err))
		}
	}
	analyticsService := analytics.NewService(catalogService, salesService, expenseService, analyticsCache)

	geminiClient := insight.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey, cfg.GeminiTimeout)
	var forecastStore *insight.ForecastStore
	if redisClient != nil {
		forecastStore = insight.NewForecastStore(redisClient, cfg.ForecastTTL)
	}
	insightService := insight.NewService(analyticsService, geminiClient, forecastStore, cfg.SnapshotSalesLimit)

	catalogHandler := catalog.NewHandler(logger, catalogService)
	salesHandler := sales.NewHandler(logger, salesService, catalogService)
	expenseHandler := expense.NewHandler(logger, expenseService)
	analyticsHandler := analytics.NewHandler(logger, analyticsService)
	insightHandler := insight.NewHandler(logger, insightService)

	var jobHandler *jobs.Handler
	if redisClient != nil {
		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		if err != nil {
			logger.Warn("job client", slog.Any("error", err))
		} else {
			defer func() {
				if err := jobClient.Close(); err != nil {
					logger.Warn("job client close", slog.Any("error", err))
				}
			}()
		}
		jobHandler = jobs.NewHandler(inspector, jobClient, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CatalogHandler:   catalogHandler,
		SalesHandler:     salesHandler,
		ExpenseHandler:   expenseHandler,
		AnalyticsHandler: analyticsHandler,
		InsightHandler:   insightHandler,
		JobHandler:       jobHandler,
		Analytics:        analyticsService,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
