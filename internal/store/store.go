package store

import (
	"sync"

	t "roadweather-service/internal/types"
)

// Default location seeded at startup, matching the dashboard's hard-coded
// starting place.
const (
	DefaultName = "City of London"
	DefaultLat  = 51.513263
	DefaultLng  = -0.089878
)

// Snapshot is a consistent read of all store slices, handed to subscribers
// on every action.
type Snapshot struct {
	Name        string
	Coordinates t.Coordinates
	Vehicle     Vehicle
	Weather     t.WeatherSummary
	Initial     bool
}

// Store holds the shared application state: the chosen location, the
// selected vehicle and the last-fetched weather summary. All actions are
// synchronous and total; reads return copies. Coordinates are accepted
// without range validation.
type Store struct {
	mu sync.RWMutex

	name    string
	coords  t.Coordinates
	vehicle Vehicle

	weather t.WeatherSummary
	initial bool

	// epoch tags the in-flight weather refresh for the current location so
	// a stale response can never overwrite a newer one.
	epoch uint64

	listeners []func(Snapshot)
}

func New() *Store {
	return &Store{
		name:    DefaultName,
		coords:  t.Coordinates{Lat: DefaultLat, Lng: DefaultLng},
		vehicle: VehicleCar,
		initial: true,
	}
}

// Subscribe registers fn to be called with a snapshot after every action.
// Listeners run synchronously while the write lock is released.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	snap := s.Snapshot()
	s.mu.RLock()
	ls := make([]func(Snapshot), len(s.listeners))
	copy(ls, s.listeners)
	s.mu.RUnlock()
	for _, fn := range ls {
		fn(snap)
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Name:        s.name,
		Coordinates: s.coords,
		Vehicle:     s.vehicle,
		Weather:     s.weather,
		Initial:     s.initial,
	}
}

// SetLocation replaces both the place name and its coordinates as one action.
func (s *Store) SetLocation(name string, coords t.Coordinates) {
	s.mu.Lock()
	s.name = name
	s.coords = coords
	s.mu.Unlock()
	s.notify()
}

func (s *Store) UpdateCoordinates(coords t.Coordinates) {
	s.mu.Lock()
	s.coords = coords
	s.mu.Unlock()
	s.notify()
}

func (s *Store) UpdateName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Location() (string, t.Coordinates) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name, s.coords
}

func (s *Store) Coordinates() t.Coordinates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coords
}

func (s *Store) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// SetWeather overwrites all four weather fields atomically and clears the
// initial flag. There are no partial weather updates.
func (s *Store) SetWeather(ws t.WeatherSummary) {
	s.mu.Lock()
	s.weather = ws
	s.initial = false
	s.mu.Unlock()
	s.notify()
}

// BeginWeatherRefresh bumps and returns the refresh epoch. The caller tags
// its fetch with the returned value and completes it through SetWeatherAt.
func (s *Store) BeginWeatherRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	return s.epoch
}

// SetWeatherAt applies a weather summary only if epoch is still the most
// recently issued refresh tag. Returns false when the response is stale.
func (s *Store) SetWeatherAt(epoch uint64, ws t.WeatherSummary) bool {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return false
	}
	s.weather = ws
	s.initial = false
	s.mu.Unlock()
	s.notify()
	return true
}

func (s *Store) Weather() t.WeatherSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather
}

// IsInitial reports whether no successful weather fetch has happened yet.
// It starts true and flips permanently to false on the first SetWeather.
func (s *Store) IsInitial() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initial
}
