package types

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeoCandidate is one result of a forward geocoding query. State is empty
// for places without an administrative subdivision.
type GeoCandidate struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// DisplayName composes the name shown for a selected candidate:
// "{name}, {state}, {country}", or "{name}, {country}" when State is empty.
func (g GeoCandidate) DisplayName() string {
	if g.State == "" {
		return g.Name + ", " + g.Country
	}
	return g.Name + ", " + g.State + ", " + g.Country
}

type WeatherSummary struct {
	Temperature int     `json:"temperature"`
	Weather     string  `json:"weather"`
	Visibility  int     `json:"visibility"`
	WindSpeed   float64 `json:"windSpeed"`
}

type ForecastPoint struct {
	TimeText    string `json:"time"`
	WeatherText string `json:"weather"`
	Temp        int    `json:"temp"`
	Icon        string `json:"icon"`
}

type CityDetails struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Population  int64       `json:"population"`
	Coordinates Coordinates `json:"coordinates"`
}

// CityWeatherDetails joins static city metadata with a live per-city weather
// fetch. The metric fields are preformatted display strings so overlay
// labels can look them up by lowercased layer name.
type CityWeatherDetails struct {
	CityDetails
	Temperature string `json:"temperature"`
	Clouds      string `json:"clouds"`
	Rain        string `json:"rain"`
	Snow        string `json:"snow"`
	Wind        string `json:"wind"`
	Pressure    string `json:"pressure"`
}

type Alert struct {
	Event    string `json:"event"`
	Headline string `json:"headline"`
	Severity string `json:"severity"`
	Areas    string `json:"areas,omitempty"`
}

type Route struct {
	Line     []Coordinates `json:"line"`
	Straight bool          `json:"straight"`
}
