package insight

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const forecastKey = "insight:forecast:latest"

// ForecastStore keeps the latest forecast in Redis so every register sees
// the same outlook. A nil store or missing client degrades to "no forecast".
type ForecastStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewForecastStore builds a store with the given retention.
func NewForecastStore(client *redis.Client, ttl time.Duration) *ForecastStore {
	return &ForecastStore{client: client, ttl: ttl}
}

// Save overwrites the stored forecast.
func (s *ForecastStore) Save(ctx context.Context, f Forecast) error {
	if s == nil || s.client == nil {
		return nil
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, forecastKey, raw, s.ttl).Err()
}

// Latest returns the stored forecast. A cache miss is not an error; the
// second return reports whether a forecast was found.
func (s *ForecastStore) Latest(ctx context.Context) (Forecast, bool, error) {
	if s == nil || s.client == nil {
		return Forecast{}, false, nil
	}
	raw, err := s.client.Get(ctx, forecastKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Forecast{}, false, nil
	}
	if err != nil {
		return Forecast{}, false, err
	}
	var f Forecast
	if err := json.Unmarshal(raw, &f); err != nil {
		return Forecast{}, false, err
	}
	return f, true, nil
}
