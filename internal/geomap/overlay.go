package geomap

import (
	"context"
	"sync"

	t "roadweather-service/internal/types"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CitySource lists the cities eligible for the weather overlay.
type CitySource interface {
	AbovePopulation(ctx context.Context, threshold int64) ([]t.CityDetails, error)
}

// CityWeatherer fetches live per-city weather details.
type CityWeatherer interface {
	CityWeather(ctx context.Context, city t.CityDetails) (*t.CityWeatherDetails, error)
}

// Overlay populates per-city weather markers for the active map layer.
// Fetches run with bounded concurrency; a failing city is logged and left
// absent so one slow or broken fetch cannot hold up the rest.
type Overlay struct {
	cities  CitySource
	weather CityWeatherer
	logger  *zap.SugaredLogger

	concurrency int
}

func NewOverlay(cities CitySource, weather CityWeatherer, logger *zap.SugaredLogger) *Overlay {
	return &Overlay{
		cities:      cities,
		weather:     weather,
		logger:      logger,
		concurrency: 8,
	}
}

// Populate fetches weather for every city above the population threshold.
func (o *Overlay) Populate(ctx context.Context, minPopulation int64) ([]t.CityWeatherDetails, error) {
	cities, err := o.cities.AbovePopulation(ctx, minPopulation)
	if err != nil {
		return nil, err
	}

	results := make([]*t.CityWeatherDetails, len(cities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	var mu sync.Mutex
	for i, city := range cities {
		i, city := i, city
		g.Go(func() error {
			details, err := o.weather.CityWeather(gctx, city)
			if err != nil {
				o.logger.Warnw("error fetching city weather",
					"city", city.Name, "error", err.Error())
				return nil
			}
			mu.Lock()
			results[i] = details
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]t.CityWeatherDetails, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}
