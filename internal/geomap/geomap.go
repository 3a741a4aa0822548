package geomap

import (
	"strings"

	t "roadweather-service/internal/types"
)

// World default view centre when no point is known.
var DefaultCentre = t.Coordinates{Lat: 55, Lng: -5}

// Centre computes the map view centre: the arithmetic midpoint when both
// start and end are known, whichever single point is known otherwise, and
// the world default when neither is.
func Centre(start, end *t.Coordinates) t.Coordinates {
	switch {
	case start != nil && end != nil:
		return t.Coordinates{
			Lat: (start.Lat + end.Lat) / 2,
			Lng: (start.Lng + end.Lng) / 2,
		}
	case start != nil:
		return *start
	case end != nil:
		return *end
	default:
		return DefaultCentre
	}
}

// Bounds returns the pair of corners to fit the view to, or a single point
// when only one coordinate is known.
func Bounds(start, end *t.Coordinates) []t.Coordinates {
	if start != nil && end != nil {
		return []t.Coordinates{*start, *end}
	}
	return []t.Coordinates{Centre(start, end)}
}

// LabelValue picks the display string for an overlay marker label, keyed by
// the lowercased layer name. Unknown layers get an empty label.
func LabelValue(layerName string, details t.CityWeatherDetails) string {
	switch strings.ToLower(layerName) {
	case "temperature":
		return details.Temperature
	case "clouds":
		return details.Clouds
	case "rain":
		return details.Rain
	case "snow":
		return details.Snow
	case "wind":
		return details.Wind
	case "pressure":
		return details.Pressure
	default:
		return ""
	}
}
