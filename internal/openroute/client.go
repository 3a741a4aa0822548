package openroute

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"roadweather-service/internal/common"
	t "roadweather-service/internal/types"
)

type Response struct {
	Error    *Error    `json:"error,omitempty"`
	Features []Feature `json:"features"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Feature struct {
	Geometry Geometry `json:"geometry"`
}

type Geometry struct {
	// Coordinates are [longitude, latitude] pairs.
	Coordinates [][]float64 `json:"coordinates"`
}

type ClientOption func(*Client)

type Client struct {
	apiKey  string
	baseUrl string
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

func New(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		panic("Missing apikey in openroute client")
	}
	if c.baseUrl == "" {
		panic("Missing baseUrl in openroute client")
	}
	return c
}

// Directions fetches a driving route between start and end. When the
// provider answers with its error object (typically the trip exceeds its
// distance limit) the two endpoints are returned as a straight line instead
// of failing the request.
func (c *Client) Directions(ctx context.Context, start, end t.Coordinates) (*t.Route, error) {
	req, err := url.Parse(fmt.Sprintf("%v/v2/directions/driving-car", c.baseUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to parse openroute baseUrl %s: %s", c.baseUrl, err.Error())
	}

	q := req.Query()
	q.Add("api_key", c.apiKey)
	q.Add("start", coordPair(start))
	q.Add("end", coordPair(end))
	req.RawQuery = q.Encode()

	ctxReq, _ := http.NewRequestWithContext(ctx, "GET", req.String(), nil)
	resp, err := common.GetWithRetry(ctxReq, "openroute")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading openroute response body: %s", err.Error())
	}

	var respObj Response
	if err := json.Unmarshal(body, &respObj); err != nil {
		return nil, fmt.Errorf("error unmarshalling response from openroute: %s", err.Error())
	}

	if respObj.Error != nil {
		return &t.Route{
			Line:     []t.Coordinates{start, end},
			Straight: true,
		}, nil
	}
	if len(respObj.Features) == 0 {
		return nil, fmt.Errorf("openroute response contains no features")
	}

	line := make([]t.Coordinates, 0, len(respObj.Features[0].Geometry.Coordinates))
	for _, pair := range respObj.Features[0].Geometry.Coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("invalid coordinate pair in openroute geometry")
		}
		// Provider order is [lon, lat]; display order is lat/lng.
		line = append(line, t.Coordinates{Lat: pair[1], Lng: pair[0]})
	}
	return &t.Route{Line: line}, nil
}

func coordPair(c t.Coordinates) string {
	return strconv.FormatFloat(c.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}
