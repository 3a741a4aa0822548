package openweather

import (
	"context"
	"fmt"

	t "roadweather-service/internal/types"

	"golang.org/x/time/rate"
)

// RateLimitedClient wraps a Client with a token-bucket limiter so batch
// callers (the city overlay) stay inside the provider's request quota.
type RateLimitedClient struct {
	client  *Client
	limiter *rate.Limiter
}

// NewRateLimited creates a rate limited wrapper allowing rps requests per
// second with the given burst.
func NewRateLimited(client *Client, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedClient) CityWeather(ctx context.Context, city t.CityDetails) (*t.CityWeatherDetails, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.CityWeather(ctx, city)
}

func (r *RateLimitedClient) CurrentWeather(ctx context.Context, coords t.Coordinates) (*t.WeatherSummary, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.CurrentWeather(ctx, coords)
}
