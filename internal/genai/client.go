package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type Request struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type Response struct {
	Candidates []Candidate `json:"candidates"`
	Error      *Error      `json:"error,omitempty"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ClientOption func(*Client)

type Client struct {
	apiKey  string
	baseUrl string
	model   string
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

func ModelOption(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

func New(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		panic("Missing apikey in genai client")
	}
	if c.baseUrl == "" {
		panic("Missing baseUrl in genai client")
	}
	if c.model == "" {
		c.model = "gemini-2.0-flash"
	}
	return c
}

// Generate submits a single text prompt and returns the model's text reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req, err := url.Parse(fmt.Sprintf("%v/v1beta/models/%v:generateContent", c.baseUrl, c.model))
	if err != nil {
		return "", fmt.Errorf("failed to parse genai baseUrl %s: %s", c.baseUrl, err.Error())
	}

	q := req.Query()
	q.Add("key", c.apiKey)
	req.RawQuery = q.Encode()

	reqBody, err := json.Marshal(Request{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("error marshalling genai request: %s", err.Error())
	}

	ctxReq, _ := http.NewRequestWithContext(ctx, "POST", req.String(), bytes.NewReader(reqBody))
	ctxReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(ctxReq)
	if err != nil {
		return "", fmt.Errorf("error on genai api request: %s", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading genai response body: %s", err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("error code %d returned from genai", resp.StatusCode)
	}

	var respObj Response
	if err := json.Unmarshal(body, &respObj); err != nil {
		return "", fmt.Errorf("error unmarshalling response from genai: %s", err.Error())
	}
	if respObj.Error != nil {
		return "", fmt.Errorf("genai error %d: %v", respObj.Error.Code, respObj.Error.Message)
	}
	if len(respObj.Candidates) == 0 || len(respObj.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return respObj.Candidates[0].Content.Parts[0].Text, nil
}
