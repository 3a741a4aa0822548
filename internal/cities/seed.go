package cities

import t "roadweather-service/internal/types"

// DefaultCities is the built-in world city list used when no external seed
// is loaded. Populations are rounded census figures.
var DefaultCities = []t.CityDetails{
	{Name: "London", Country: "GB", Population: 8982000, Coordinates: t.Coordinates{Lat: 51.5074, Lng: -0.1278}},
	{Name: "Birmingham", Country: "GB", Population: 1141000, Coordinates: t.Coordinates{Lat: 52.4862, Lng: -1.8904}},
	{Name: "Manchester", Country: "GB", Population: 553000, Coordinates: t.Coordinates{Lat: 53.4808, Lng: -2.2426}},
	{Name: "Glasgow", Country: "GB", Population: 633000, Coordinates: t.Coordinates{Lat: 55.8642, Lng: -4.2518}},
	{Name: "Dublin", Country: "IE", Population: 592000, Coordinates: t.Coordinates{Lat: 53.3498, Lng: -6.2603}},
	{Name: "Paris", Country: "FR", Population: 2161000, Coordinates: t.Coordinates{Lat: 48.8566, Lng: 2.3522}},
	{Name: "Berlin", Country: "DE", Population: 3645000, Coordinates: t.Coordinates{Lat: 52.52, Lng: 13.405}},
	{Name: "Madrid", Country: "ES", Population: 3223000, Coordinates: t.Coordinates{Lat: 40.4168, Lng: -3.7038}},
	{Name: "Rome", Country: "IT", Population: 2873000, Coordinates: t.Coordinates{Lat: 41.9028, Lng: 12.4964}},
	{Name: "Amsterdam", Country: "NL", Population: 821000, Coordinates: t.Coordinates{Lat: 52.3676, Lng: 4.9041}},
	{Name: "Brussels", Country: "BE", Population: 1209000, Coordinates: t.Coordinates{Lat: 50.8503, Lng: 4.3517}},
	{Name: "Vienna", Country: "AT", Population: 1897000, Coordinates: t.Coordinates{Lat: 48.2082, Lng: 16.3738}},
	{Name: "Warsaw", Country: "PL", Population: 1765000, Coordinates: t.Coordinates{Lat: 52.2297, Lng: 21.0122}},
	{Name: "Stockholm", Country: "SE", Population: 975000, Coordinates: t.Coordinates{Lat: 59.3293, Lng: 18.0686}},
	{Name: "Oslo", Country: "NO", Population: 697000, Coordinates: t.Coordinates{Lat: 59.9139, Lng: 10.7522}},
	{Name: "Copenhagen", Country: "DK", Population: 794000, Coordinates: t.Coordinates{Lat: 55.6761, Lng: 12.5683}},
	{Name: "Lisbon", Country: "PT", Population: 505000, Coordinates: t.Coordinates{Lat: 38.7223, Lng: -9.1393}},
	{Name: "Athens", Country: "GR", Population: 664000, Coordinates: t.Coordinates{Lat: 37.9838, Lng: 23.7275}},
	{Name: "New York", Country: "US", Population: 8399000, Coordinates: t.Coordinates{Lat: 40.7128, Lng: -74.006}},
	{Name: "Los Angeles", Country: "US", Population: 3990000, Coordinates: t.Coordinates{Lat: 34.0522, Lng: -118.2437}},
	{Name: "Chicago", Country: "US", Population: 2706000, Coordinates: t.Coordinates{Lat: 41.8781, Lng: -87.6298}},
	{Name: "Toronto", Country: "CA", Population: 2731000, Coordinates: t.Coordinates{Lat: 43.6532, Lng: -79.3832}},
	{Name: "Tokyo", Country: "JP", Population: 13960000, Coordinates: t.Coordinates{Lat: 35.6762, Lng: 139.6503}},
	{Name: "Sydney", Country: "AU", Population: 5312000, Coordinates: t.Coordinates{Lat: -33.8688, Lng: 151.2093}},
}
