// Package jobs runs background work over Asynq.
package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskForecastRefresh regenerates the stored sales forecast.
	TaskForecastRefresh = "insight:forecast_refresh"
)

// NewForecastRefreshTask constructs the forecast refresh task. The task
// carries no payload; the handler reads live data when it runs.
func NewForecastRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskForecastRefresh, nil)
}
