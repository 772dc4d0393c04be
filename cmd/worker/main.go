package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/easyeat-pos/easyeat/internal/analytics"
	"github.com/easyeat-pos/easyeat/internal/app"
	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/expense"
	"github.com/easyeat-pos/easyeat/internal/insight"
	"github.com/easyeat-pos/easyeat/internal/platform/cache"
	"github.com/easyeat-pos/easyeat/internal/platform/db"
	"github.com/easyeat-pos/easyeat/internal/sales"
	"github.com/easyeat-pos/easyeat/jobs"
)

// The worker requires both PostgreSQL and Redis: it has no business running
// against the volatile in-memory fallback.
func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	catalogService := catalog.NewService(catalog.NewRepository(pool))
	salesService := sales.NewService(sales.NewRepository(pool))
	expenseService := expense.NewService(expense.NewRepository(pool))
	analyticsService := analytics.NewService(catalogService, salesService, expenseService, nil)

	geminiClient := insight.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey, cfg.GeminiTimeout)
	forecastStore := insight.NewForecastStore(redisClient, cfg.ForecastTTL)
	insightService := insight.NewService(analyticsService, geminiClient, forecastStore, cfg.SnapshotSalesLimit)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskForecastRefresh, Handler: jobs.NewForecastRefreshHandler(logger, insightService)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.ForecastCron, Task: jobs.NewForecastRefreshTask(), Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
