package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	t "roadweather-service/internal/types"

	"github.com/go-redis/redis/v8"
)

// ConditionsCache stores recently fetched current-conditions summaries in
// Redis, keyed by coordinates rounded to two decimal places (roughly 1.1km)
// so nearby lookups share an entry.
type ConditionsCache struct {
	rc  *redis.Client
	ttl time.Duration
}

func New(rc *redis.Client, ttl time.Duration) *ConditionsCache {
	return &ConditionsCache{rc: rc, ttl: ttl}
}

func key(coords t.Coordinates) string {
	const precision = 100.0
	lat := math.Round(coords.Lat*precision) / precision
	lng := math.Round(coords.Lng*precision) / precision
	return fmt.Sprintf("conditions:%.2f:%.2f", lat, lng)
}

// Get returns the cached summary for coords, or nil on a miss. Transport
// errors are returned so the caller can log and fall through to a fresh
// fetch.
func (c *ConditionsCache) Get(ctx context.Context, coords t.Coordinates) (*t.WeatherSummary, error) {
	raw, err := c.rc.Get(ctx, key(coords)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis error fetching conditions: %w", err)
	}

	var ws t.WeatherSummary
	if err := json.Unmarshal([]byte(raw), &ws); err != nil {
		return nil, fmt.Errorf("error unmarshalling cached conditions: %w", err)
	}
	return &ws, nil
}

func (c *ConditionsCache) Set(ctx context.Context, coords t.Coordinates, ws t.WeatherSummary) error {
	raw, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("error marshalling conditions for cache: %w", err)
	}
	if err := c.rc.Set(ctx, key(coords), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis error storing conditions: %w", err)
	}
	return nil
}
