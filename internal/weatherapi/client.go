package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"roadweather-service/internal/common"
	t "roadweather-service/internal/types"
)

type Response struct {
	Alerts AlertBlock `json:"alerts"`
}

type AlertBlock struct {
	Alert []Alert `json:"alert"`
}

type Alert struct {
	Event    string `json:"event"`
	Headline string `json:"headline"`
	Severity string `json:"severity"`
	Areas    string `json:"areas"`
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
		panic("Missing apikey in weatherapi client")
	}
	if c.baseUrl == "" {
		panic("Missing baseUrl in weatherapi client")
	}
	return c
}

// Alerts fetches active weather warnings for a place name. The place is a
// caller choice rather than a fixed constant so alerts can follow the
// selected location.
func (c *Client) Alerts(ctx context.Context, place string) ([]t.Alert, error) {
	req, err := url.Parse(fmt.Sprintf("%v/v1/forecast.json", c.baseUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to parse weatherapi baseUrl %s: %s", c.baseUrl, err.Error())
	}

	q := req.Query()
	q.Add("key", c.apiKey)
	q.Add("q", place)
	q.Add("days", "1")
	q.Add("aqi", "no")
	q.Add("alerts", "yes")
	req.RawQuery = q.Encode()

	ctxReq, _ := http.NewRequestWithContext(ctx, "GET", req.String(), nil)
	resp, err := common.GetWithRetry(ctxReq, "weatherapi")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading weatherapi response body: %s", err.Error())
	}

	var respObj Response
	if err := json.Unmarshal(body, &respObj); err != nil {
		return nil, fmt.Errorf("error unmarshalling response from weatherapi: %s", err.Error())
	}

	alerts := make([]t.Alert, 0, len(respObj.Alerts.Alert))
	for _, a := range respObj.Alerts.Alert {
		alerts = append(alerts, t.Alert{
			Event:    a.Event,
			Headline: a.Headline,
			Severity: a.Severity,
			Areas:    a.Areas,
		})
	}
	return alerts, nil
}
