package tooltip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/tbctxt/readycheck/internal/common"
)

// DefaultEndpoints are the tooltip endpoint templates tried in order. Each
// contains a single %d verb for the item id.
var DefaultEndpoints = []string{
	"https://nether.wowhead.com/tooltip/item/%d?dataEnv=5&locale=0",
	"https://nether.wowhead.com/tooltip/item/%d?dataEnv=4&locale=0",
	"https://nether.wowhead.com/tbc/tooltip/item/%d",
	"https://tbc.wowhead.com/tooltip/item/%d",
}

// Config holds the settings for the tooltip fetcher.
type Config struct {
	Endpoints         []string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Fetcher retrieves raw tooltip markup by item id over HTTP, trying fallback
// endpoints in order. Fetched tooltips are cached for the process lifetime
// since item data is static for the expansion.
type Fetcher struct {
	cfg     Config
	http    *http.Client
	limiter *rateLimiter
	log     *slog.Logger

	mu    sync.Mutex
	cache map[int]string
}

// NewFetcher creates a tooltip fetcher from config, filling in defaults.
func NewFetcher(cfg Config) *Fetcher {
	if len(cfg.Endpoints) == 0 {
		cfg.Endpoints = DefaultEndpoints
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Fetcher{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: newRateLimiter(cfg.RequestsPerMinute),
		log:     common.ComponentLogger("tooltip"),
		cache:   make(map[int]string),
	}
}

// Close stops the fetcher's rate limiter.
func (f *Fetcher) Close() {
	f.limiter.stop()
}

type tooltipResponse struct {
	Tooltip string `json:"tooltip"`
}

// Fetch returns the tooltip markup for an item, or false when every endpoint
// fails. Individual endpoint failures are logged and absorbed; a batch never
// aborts because one item could not be fetched.
func (f *Fetcher) Fetch(ctx context.Context, itemID int) (string, bool) {
	f.mu.Lock()
	if markup, ok := f.cache[itemID]; ok {
		f.mu.Unlock()
		return markup, true
	}
	f.mu.Unlock()

	if err := f.limiter.wait(ctx); err != nil {
		return "", false
	}

	for _, tmpl := range f.cfg.Endpoints {
		endpoint := fmt.Sprintf(tmpl, itemID)
		markup, err := f.fetchOne(ctx, endpoint)
		if err != nil {
			f.log.Debug("tooltip endpoint failed",
				"item_id", itemID, "endpoint", endpoint, "error", err)
			continue
		}

		f.mu.Lock()
		f.cache[itemID] = markup
		f.mu.Unlock()
		return markup, true
	}

	f.log.Warn("tooltip not found on any endpoint", "item_id", itemID)
	return "", false
}

func (f *Fetcher) fetchOne(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", common.ErrTooltipUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed tooltipResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrTooltipUnavailable, err)
	}
	if parsed.Tooltip == "" {
		return "", fmt.Errorf("%w: empty tooltip", common.ErrTooltipUnavailable)
	}
	return parsed.Tooltip, nil
}

// CachedCount reports the number of cached tooltips.
func (f *Fetcher) CachedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cache)
}
