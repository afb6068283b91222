// Package armory imports a character's equipped gear from the Blizzard
// profile API using OAuth2 client-credentials.
package armory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/tbctxt/readycheck/internal/common"
)

// Config holds the settings for the armory client.
type Config struct {
	ClientID     string
	ClientSecret string
	Region       string
	// TokenURL and APIBase override the region-derived endpoints, for tests.
	TokenURL string
	APIBase  string
	Timeout  time.Duration
}

// Validate checks that required settings are present.
func (c Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("%w: armory client id and secret are required", common.ErrMissingConfig)
	}
	return nil
}

// GearItem is one equipped item from a character profile.
type GearItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Slot      string `json:"slot"`
	Quality   string `json:"quality"`
	ItemLevel int    `json:"itemLevel"`
}

// Client fetches character equipment over the profile API.
type Client struct {
	cfg    Config
	http   *http.Client
	region string
	base   string
	log    *slog.Logger
}

// NewClient creates an armory client. The returned client owns a token
// source that refreshes itself as needed.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	region := cfg.Region
	if region == "" {
		region = "us"
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf("https://%s.battle.net/oauth/token", region)
	}
	base := cfg.APIBase
	if base == "" {
		base = fmt.Sprintf("https://%s.api.blizzard.com", region)
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := cc.Client(ctx)
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	} else {
		httpClient.Timeout = 15 * time.Second
	}

	return &Client{
		cfg:    cfg,
		http:   httpClient,
		region: region,
		base:   base,
		log:    common.ComponentLogger("armory"),
	}, nil
}

// namespaces are the profile namespaces tried in order; the progression-era
// API has shuffled characters between them over time.
func (c *Client) namespaces() []string {
	return []string{
		"profile-classic-" + c.region,
		"profile-classic1x-" + c.region,
		"profile-classicprogression-" + c.region,
	}
}

type equipmentResponse struct {
	EquippedItems []struct {
		Item struct {
			ID int `json:"id"`
		} `json:"item"`
		Name json.RawMessage `json:"name"`
		Slot struct {
			Type string `json:"type"`
		} `json:"slot"`
		Quality struct {
			Type string `json:"type"`
		} `json:"quality"`
		Level struct {
			Value int `json:"value"`
		} `json:"level"`
	} `json:"equipped_items"`
}

// FetchGear retrieves a character's equipped items, trying each profile
// namespace in order. Returns common.ErrNotFound when no namespace knows the
// character.
func (c *Client) FetchGear(ctx context.Context, name, realm string) ([]GearItem, error) {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(realm)), " ", "-")
	path := fmt.Sprintf("%s/profile/wow/character/%s/%s/equipment",
		c.base, slug, strings.ToLower(strings.TrimSpace(name)))

	for _, ns := range c.namespaces() {
		items, err := c.fetchWithNamespace(ctx, path, ns)
		if err != nil {
			c.log.Debug("namespace lookup failed",
				"namespace", ns, "character", name, "error", err)
			continue
		}
		c.log.Info("character gear imported",
			"character", name, "realm", realm, "items", len(items), "namespace", ns)
		return items, nil
	}

	return nil, fmt.Errorf("%w: character %s on %s", common.ErrNotFound, name, realm)
}

func (c *Client) fetchWithNamespace(ctx context.Context, path, namespace string) ([]GearItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Battlenet-Namespace", namespace)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed equipmentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.EquippedItems) == 0 {
		return nil, fmt.Errorf("no equipped items")
	}

	items := make([]GearItem, 0, len(parsed.EquippedItems))
	for _, e := range parsed.EquippedItems {
		items = append(items, GearItem{
			ID:        e.Item.ID,
			Name:      itemName(e.Name),
			Slot:      e.Slot.Type,
			Quality:   e.Quality.Type,
			ItemLevel: e.Level.Value,
		})
	}
	return items, nil
}

// itemName tolerates both the plain-string and localized-object name shapes
// the profile API returns.
func itemName(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var localized map[string]string
	if err := json.Unmarshal(raw, &localized); err == nil {
		for _, key := range []string{"en_US", "en_GB"} {
			if v, ok := localized[key]; ok {
				return v
			}
		}
		for _, v := range localized {
			return v
		}
	}
	return ""
}

// GearText flattens imported items into the pasted-gear-list text format the
// engine consumes.
func GearText(items []GearItem) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Name != "" {
			names = append(names, item.Name)
		}
	}
	return strings.Join(names, "\n")
}
