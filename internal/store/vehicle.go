package store

// Vehicle is the closed set of vehicle categories the advice generator
// understands.
type Vehicle string

const (
	VehicleCar       Vehicle = "car"
	VehicleMotorbike Vehicle = "motorbike"
	VehicleVan       Vehicle = "van"
)

// order fixes the carousel cycle: car -> motorbike -> van -> car.
var order = []Vehicle{VehicleCar, VehicleMotorbike, VehicleVan}

func (v Vehicle) Valid() bool {
	for _, o := range order {
		if v == o {
			return true
		}
	}
	return false
}

func (s *Store) SetVehicle(v Vehicle) {
	s.mu.Lock()
	s.vehicle = v
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Vehicle() Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vehicle
}

// Carousel steps through the vehicle cycle and writes each selection into
// the store, mirroring the dashboard's vehicle slider.
type Carousel struct {
	store *Store
	index int
}

func NewCarousel(s *Store) *Carousel {
	return &Carousel{store: s}
}

// Step moves by step positions (negative steps backwards) with wrap-around
// and records the resulting vehicle in the store.
func (c *Carousel) Step(step int) Vehicle {
	n := len(order)
	c.index = ((c.index+step)%n + n) % n
	v := order[c.index]
	c.store.SetVehicle(v)
	return v
}

func (c *Carousel) Current() Vehicle {
	return order[c.index]
}
