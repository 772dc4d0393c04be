package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/easyeat-pos/easyeat/internal/insight"
)

// ForecastRefresher regenerates and stores the sales forecast.
type ForecastRefresher interface {
	RefreshForecast(ctx context.Context) (insight.Forecast, error)
}

// NewForecastRefreshHandler builds the Asynq handler for forecast refreshes.
// An unavailable model is logged and dropped rather than retried; the next
// scheduled run will try again.
func NewForecastRefreshHandler(logger *slog.Logger, refresher ForecastRefresher) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		forecast, err := refresher.RefreshForecast(ctx)
		if err != nil {
			if errors.Is(err, insight.ErrUnavailable) {
				logger.Warn("forecast refresh skipped", slog.Any("error", err))
				return asynq.SkipRetry
			}
			return err
		}
		logger.Info("forecast refreshed",
			slog.Time("generatedAt", forecast.GeneratedAt),
			slog.Int("products", len(forecast.Items)))
		return nil
	}
}
