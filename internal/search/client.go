package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tbctxt/readycheck/internal/common"
)

// Config holds the settings for the HTTP search client.
type Config struct {
	BaseURL string
	Region  string
	Timeout time.Duration
	Retry   common.RetryOptions
}

// Validate checks that required settings are present.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: search base URL is required", common.ErrMissingConfig)
	}
	return nil
}

// Client queries the backend item-search endpoint over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

// NewClient creates a search client from config.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Region == "" {
		cfg.Region = "us"
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  common.ComponentLogger("search"),
	}, nil
}

type searchResponse struct {
	Items []Candidate `json:"items"`
}

// Search queries the service for item candidates matching name. Transport
// failures, non-200 responses and malformed bodies come back as errors so
// callers can avoid memoizing them.
func (c *Client) Search(ctx context.Context, name string) ([]Candidate, error) {
	endpoint := fmt.Sprintf("%s/api/item-search?name=%s&region=%s",
		c.cfg.BaseURL, url.QueryEscape(name), url.QueryEscape(c.cfg.Region))

	var items []Candidate
	err := common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode == http.StatusTooManyRequests {
			return common.ErrRateLimit
		}
		if resp.StatusCode != http.StatusOK {
			retryable := resp.StatusCode >= 500
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: status %d", common.ErrSearchUnavailable, resp.StatusCode),
				Retryable: retryable,
			}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}

		var parsed searchResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: %v", common.ErrSearchUnavailable, err),
				Retryable: false,
			}
		}

		items = parsed.Items
		return nil
	}, c.cfg.Retry)
	if err != nil {
		c.log.Warn("item search failed", "name", name, "error", err)
		return nil, err
	}

	c.log.Debug("item search completed", "name", name, "candidates", len(items))
	return items, nil
}
