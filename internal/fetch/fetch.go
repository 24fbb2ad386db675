// Package fetch loads the todo list from a remote JSON endpoint in one request.
// There is no paging on the server side, no caching and no retry: a failed
// request is reported to the caller and that is the end of it.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todoview/internal/model"
)

// DefaultURL serves the public placeholder todo list.
const DefaultURL = "https://jsonplaceholder.typicode.com/todos"

// DefaultTimeout bounds the single load request.
const DefaultTimeout = 15 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 16 << 20

// ErrUnexpectedStatus is returned for any non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Config holds the client configuration.
type Config struct {
	URL     string
	Timeout time.Duration
	// Token, when set, is sent as a bearer token.
	Token     string
	UserAgent string
}

// Client fetches the item list over HTTP.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a client. A zero URL or Timeout falls back to the defaults.
// httpClient may be nil.
func New(cfg Config, httpClient *http.Client, logger zerolog.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "todoview"
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger.With().Str("component", "fetch").Logger(),
	}
}

// String names the source in logs and headers.
func (c *Client) String() string { return c.config.URL }

// LoadItems performs the request and decodes the response body.
func (c *Client) LoadItems(ctx context.Context) ([]model.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", c.config.URL).Msg("Request failed")
		return nil, fmt.Errorf("get %s: %w", c.config.URL, err)
	}
	defer resp.Body.Close()

	log := c.logger.With().
		Str("url", c.config.URL).
		Int("status_code", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Logger()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Msg("Unexpected response status")
		return nil, fmt.Errorf("get %s: %w: %s", c.config.URL, ErrUnexpectedStatus, resp.Status)
	}

	var items []model.Item
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&items); err != nil {
		log.Error().Err(err).Msg("Decode failed")
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}

	log.Info().Int("items", len(items)).Msg("Items loaded")
	return items, nil
}
