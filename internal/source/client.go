package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/roach88/afsync/internal/refdata"
)

const (
	// DefaultBaseURL is the production AFS API.
	DefaultBaseURL = "https://advanced-flights-system.replit.app/api"
	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second

	citiesEndpoint   = "cities"
	airportsEndpoint = "airports"

	// maxErrorBody caps how much of an error response ends up in APIError.Message.
	maxErrorBody = 512
)

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client reads the AFS cities and airports lists.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client. Zero fields of cfg take the package defaults.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Cities fetches the authoritative city list.
func (c *Client) Cities(ctx context.Context) ([]refdata.CityRecord, error) {
	var out []refdata.CityRecord
	if err := c.getList(ctx, citiesEndpoint, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("afs %s: %w", citiesEndpoint, ErrEmptyResponse)
	}
	return out, nil
}

// Airports fetches the airport list.
func (c *Client) Airports(ctx context.Context) ([]refdata.AirportRecord, error) {
	var out []refdata.AirportRecord
	if err := c.getList(ctx, airportsEndpoint, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("afs %s: %w", airportsEndpoint, ErrEmptyResponse)
	}
	return out, nil
}

// getList performs an authenticated GET and decodes the JSON body into v.
func (c *Client) getList(ctx context.Context, endpoint string, v any) error {
	url := c.baseURL + "/" + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &APIError{Endpoint: endpoint, Message: "failed to create request", Err: err}
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Endpoint: endpoint, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("afs response", "endpoint", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &APIError{Endpoint: endpoint, Message: "failed to decode response", Err: err}
	}
	return nil
}
