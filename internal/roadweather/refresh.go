package roadweather

import (
	"context"
	"time"

	t "roadweather-service/internal/types"
)

// refreshWeather fetches current conditions for coords and writes them into
// the weather store. Each refresh is tagged with the store's epoch so a
// slow response for an old location can never overwrite a newer one.
func (s *Service) refreshWeather(ctx context.Context, coords t.Coordinates) {
	epoch := s.store.BeginWeatherRefresh()
	go s.runRefresh(ctx, epoch, coords)
}

func (s *Service) runRefresh(ctx context.Context, epoch uint64, coords t.Coordinates) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	summary, err := s.currentConditions(ctx, coords)
	if err != nil {
		s.Logger.Errorw("error refreshing current conditions",
			"lat", coords.Lat, "lng", coords.Lng, "error", err.Error())
		return
	}

	if !s.store.SetWeatherAt(epoch, *summary) {
		s.Logger.Infow("discarded stale conditions response",
			"lat", coords.Lat, "lng", coords.Lng, "epoch", epoch)
	}
}

// currentConditions consults the Redis cache before the provider and
// populates it after a fresh fetch. Cache failures degrade to a direct
// fetch.
func (s *Service) currentConditions(ctx context.Context, coords t.Coordinates) (*t.WeatherSummary, error) {
	if !s.disableRedis {
		cached, err := s.cache.Get(ctx, coords)
		if err != nil {
			s.Logger.Warnf("conditions cache read failed: %v", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.owLimited.CurrentWeather(ctx, coords)
	if err != nil {
		return nil, err
	}

	if !s.disableRedis {
		if err := s.cache.Set(ctx, coords, *summary); err != nil {
			s.Logger.Warnf("conditions cache write failed: %v", err.Error())
		}
	}
	return summary, nil
}
