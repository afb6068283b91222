package armory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbctxt/readycheck/internal/common"
)

func newTestClient(t *testing.T, api http.HandlerFunc) *Client {
	t.Helper()

	token := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"bearer","expires_in":3600}`))
	}))
	t.Cleanup(token.Close)

	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	client, err := NewClient(context.Background(), Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Region:       "us",
		TokenURL:     token.URL,
		APIBase:      apiSrv.URL,
	})
	require.NoError(t, err)
	return client
}

func TestFetchGear(t *testing.T) {
	var namespaces []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile/wow/character/benediction/leeroy/equipment", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		ns := r.Header.Get("Battlenet-Namespace")
		namespaces = append(namespaces, ns)
		if ns != "profile-classicprogression-us" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"equipped_items": []map[string]any{
				{
					"item":    map[string]any{"id": 28773},
					"name":    "Gorehowl",
					"slot":    map[string]any{"type": "MAIN_HAND"},
					"quality": map[string]any{"type": "EPIC"},
					"level":   map[string]any{"value": 125},
				},
				{
					"item": map[string]any{"id": 28830},
					"name": map[string]any{"en_US": "Dragonspine Trophy"},
					"slot": map[string]any{"type": "TRINKET_1"},
				},
			},
		})
	})

	items, err := client.FetchGear(context.Background(), "Leeroy", "Benediction")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 28773, items[0].ID)
	assert.Equal(t, "Gorehowl", items[0].Name)
	assert.Equal(t, "MAIN_HAND", items[0].Slot)
	assert.Equal(t, 125, items[0].ItemLevel)
	assert.Equal(t, "Dragonspine Trophy", items[1].Name)

	// Fallback namespaces were tried in order
	assert.Equal(t, []string{
		"profile-classic-us",
		"profile-classic1x-us",
		"profile-classicprogression-us",
	}, namespaces)
}

func TestFetchGearNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchGear(context.Background(), "Nobody", "Benediction")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGearText(t *testing.T) {
	text := GearText([]GearItem{
		{Name: "Gorehowl"},
		{Name: ""},
		{Name: "Dragonspine Trophy"},
	})
	assert.Equal(t, "Gorehowl\nDragonspine Trophy", text)
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), common.ErrMissingConfig)
	assert.NoError(t, Config{ClientID: "a", ClientSecret: "b"}.Validate())
}
