package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"roadweather-service/internal/common"
	t "roadweather-service/internal/types"
)

const kelvinOffset = 273.15

type CurrentResponse struct {
	Cod        json.Number `json:"cod"`
	Weather    []Condition `json:"weather"`
	Main       Main        `json:"main"`
	Visibility int         `json:"visibility"`
	Wind       Wind        `json:"wind"`
	Clouds     Clouds      `json:"clouds"`
	Rain       Volume      `json:"rain"`
	Snow       Volume      `json:"snow"`
}

type Condition struct {
	Id          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Main struct {
	Temp     float64 `json:"temp"`
	Pressure int     `json:"pressure"`
	Humidity int     `json:"humidity"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type Clouds struct {
	All int `json:"all"`
}

type Volume struct {
	OneHour float64 `json:"1h"`
}

type ForecastResponse struct {
	Cod  json.Number    `json:"cod"`
	List []ForecastItem `json:"list"`
}

type ForecastItem struct {
	Dt      int64       `json:"dt"`
	DtTxt   string      `json:"dt_txt"`
	Main    Main        `json:"main"`
	Weather []Condition `json:"weather"`
}

type ClientOption func(*Client)

type Client struct {
	apiKey      string
	baseUrl     string
	tileBaseUrl string
}

func ApiKeyOption(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func BaseUrlOption(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func TileBaseUrlOption(tileBaseUrl string) ClientOption {
	return func(c *Client) {
		c.tileBaseUrl = tileBaseUrl
	}
}

func New(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		panic("Missing apikey in openweather client")
	}
	if c.baseUrl == "" {
		panic("Missing baseUrl in openweather client")
	}
	if c.tileBaseUrl == "" {
		c.tileBaseUrl = "https://maps.openweathermap.org/maps/2.0/weather"
	}
	return c
}

// CurrentWeather fetches current conditions. A cod other than 200 is the
// provider's structured error and comes back as a Go error; callers leave
// their previous state in place.
func (c *Client) CurrentWeather(ctx context.Context, coords t.Coordinates) (*t.WeatherSummary, error) {
	body, err := c.get(ctx, "/data/2.5/weather", url.Values{
		"lat": {formatCoord(coords.Lat)},
		"lon": {formatCoord(coords.Lng)},
	})
	if err != nil {
		return nil, err
	}

	var respObj CurrentResponse
	if err := json.Unmarshal(body, &respObj); err != nil {
		return nil, fmt.Errorf("error unmarshalling response from openweather: %s", err.Error())
	}
	if respObj.Cod.String() != "200" {
		return nil, fmt.Errorf("openweather returned cod %v", respObj.Cod)
	}

	summary := &t.WeatherSummary{
		Temperature: int(math.Round(respObj.Main.Temp - kelvinOffset)),
		Visibility:  respObj.Visibility,
		WindSpeed:   respObj.Wind.Speed,
	}
	if len(respObj.Weather) > 0 {
		summary.Weather = respObj.Weather[0].Main
	}
	return summary, nil
}

// Forecast fetches the 3-hourly forecast, capped to the first maxPoints
// entries.
func (c *Client) Forecast(ctx context.Context, coords t.Coordinates, maxPoints int) ([]t.ForecastPoint, error) {
	body, err := c.get(ctx, "/data/2.5/forecast", url.Values{
		"lat": {formatCoord(coords.Lat)},
		"lon": {formatCoord(coords.Lng)},
	})
	if err != nil {
		return nil, err
	}

	var respObj ForecastResponse
	if err := json.Unmarshal(body, &respObj); err != nil {
		return nil, fmt.Errorf("error unmarshalling forecast from openweather: %s", err.Error())
	}
	if respObj.Cod.String() != "200" {
		return nil, fmt.Errorf("openweather forecast returned cod %v", respObj.Cod)
	}

	var points []t.ForecastPoint
	for _, item := range respObj.List {
		if len(points) >= maxPoints {
			break
		}
		var main string
		if len(item.Weather) > 0 {
			main = item.Weather[0].Main
		}
		points = append(points, t.ForecastPoint{
			TimeText:    forecastTimeText(item),
			WeatherText: main,
			Temp:        int(math.Floor(item.Main.Temp - kelvinOffset)),
			Icon:        IconFor(main),
		})
	}
	return points, nil
}

// GeoCode resolves a free-text place name to candidate locations. Zero
// candidates is not an error; the empty slice is returned.
func (c *Client) GeoCode(ctx context.Context, query string, limit int) ([]t.GeoCandidate, error) {
	body, err := c.get(ctx, "/geo/1.0/direct", url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}

	var candidates []t.GeoCandidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("error unmarshalling geocode response from openweather: %s", err.Error())
	}
	return candidates, nil
}

// CityWeather fetches current conditions for a city and formats each metric
// as the display string the map overlay labels look up.
func (c *Client) CityWeather(ctx context.Context, city t.CityDetails) (*t.CityWeatherDetails, error) {
	body, err := c.get(ctx, "/data/2.5/weather", url.Values{
		"lat": {formatCoord(city.Coordinates.Lat)},
		"lon": {formatCoord(city.Coordinates.Lng)},
	})
	if err != nil {
		return nil, err
	}

	var respObj CurrentResponse
	if err := json.Unmarshal(body, &respObj); err != nil {
		return nil, fmt.Errorf("error unmarshalling city weather from openweather: %s", err.Error())
	}
	if respObj.Cod.String() != "200" {
		return nil, fmt.Errorf("openweather returned cod %v for city %v", respObj.Cod, city.Name)
	}

	return &t.CityWeatherDetails{
		CityDetails: city,
		Temperature: fmt.Sprintf("%d°", int(math.Round(respObj.Main.Temp-kelvinOffset))),
		Clouds:      fmt.Sprintf("%d%%", respObj.Clouds.All),
		Rain:        fmt.Sprintf("%.1fmm", respObj.Rain.OneHour),
		Snow:        fmt.Sprintf("%.1fmm", respObj.Snow.OneHour),
		Wind:        fmt.Sprintf("%.1fm/s", respObj.Wind.Speed),
		Pressure:    fmt.Sprintf("%dhPa", respObj.Main.Pressure),
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := url.Parse(c.baseUrl + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse baseUrl %s: %s", c.baseUrl, err.Error())
	}

	q := req.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Add("appid", c.apiKey)
	req.RawQuery = q.Encode()

	ctxReq, _ := http.NewRequestWithContext(ctx, "GET", req.String(), nil)
	resp, err := common.GetWithRetry(ctxReq, "openweather")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading body of response: %s", err.Error())
	}
	return body, nil
}

func forecastTimeText(item ForecastItem) string {
	if ts, err := time.Parse("2006-01-02 15:04:05", item.DtTxt); err == nil {
		return ts.Format("15:04")
	}
	return time.Unix(item.Dt, 0).UTC().Format("15:04")
}

// IconFor maps a condition group to the dashboard's icon name.
func IconFor(main string) string {
	switch main {
	case "Thunderstorm":
		return "storm"
	case "Drizzle":
		return "drizzle"
	case "Rain":
		return "rain"
	case "Snow":
		return "snow"
	case "Clear":
		return "sun"
	case "Mist", "Smoke", "Haze", "Dust", "Fog", "Sand", "Ash", "Squall", "Tornado":
		return "wind"
	default:
		return "cloud"
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
