// Package analysis talks to the external color analysis service.
package analysis

import (
	"bytes"
	"colorseason/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	maxBody = 1 << 20
)

// Match identifies the color that was analyzed.
type Match struct {
	Hex string `json:"hex"`
}

// Trait pairs a color with the opaque analysis the color endpoint returned for it.
type Trait struct {
	Match    Match           `json:"match"`
	Analysis json.RawMessage `json:"analysis"`
}

// Request is the body of POST /analyze-color-season.
type Request struct {
	Skin Trait `json:"skin"`
	Hair Trait `json:"hair"`
	Eyes Trait `json:"eyes"`
}

var emptyAnalysis = json.RawMessage(`{}`)

// Client calls GET /color and POST /analyze-color-season. Every call is
// bounded by the configured timeout and by the caller's context.
type Client struct {
	colorURL   string
	seasonURL  string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(cfg config.AnalysisConfig) (*Client, error) {
	colorURL := strings.TrimSpace(cfg.ColorBaseURL)
	if colorURL == "" {
		colorURL = DefaultBaseURL
	}
	seasonURL := strings.TrimSpace(cfg.SeasonBaseURL)
	if seasonURL == "" {
		seasonURL = colorURL
	}
	for _, u := range []string{colorURL, seasonURL} {
		parsed, err := url.Parse(u)
		if err != nil {
			return nil, fmt.Errorf("parse analysis URL %q: %w", u, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return nil, fmt.Errorf("analysis URL %q must be http or https", u)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		colorURL:   strings.TrimRight(colorURL, "/"),
		seasonURL:  strings.TrimRight(seasonURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
	}, nil
}

// AnalyzeColor fetches the analysis for one color. It never fails: any error
// is logged and an empty object is returned in its place.
func (c *Client) AnalyzeColor(ctx context.Context, hex string) json.RawMessage {
	raw, err := c.fetchColor(ctx, hex)
	if err != nil {
		slog.WarnContext(ctx, "color analysis failed", "hex", hex, "error", err)
		return emptyAnalysis
	}
	return raw
}

func (c *Client) fetchColor(ctx context.Context, hex string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("hex_code", strings.ToUpper(hex))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.colorURL+"/color?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build color request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "color")
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.New("color response was not valid JSON")
	}
	return body, nil
}

// Classify posts the assembled request and returns the raw response body.
// Transport errors and non-2xx statuses are returned as errors; the body of a
// successful response is not interpreted here.
func (c *Client) Classify(ctx context.Context, r Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal season request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.seasonURL+"/analyze-color-season", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build season request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, "season")
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Operation: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// Ready gates on the season endpoint, since a failed classification fails
// the whole submission. Any answer below 500 counts, including the 405 a
// POST-only route gives to GET. The color endpoint is only reported: its
// failures degrade to empty analyses.
func (c *Client) Ready(ctx context.Context) error {
	if _, err := c.fetchColor(ctx, "#000000"); err != nil {
		slog.WarnContext(ctx, "color service unavailable, analyses will be empty", "error", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.seasonURL+"/analyze-color-season", nil)
	if err != nil {
		return fmt.Errorf("build season probe: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("season service not reachable: %w", err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &StatusError{Operation: "season", StatusCode: resp.StatusCode}
	}
	return nil
}
