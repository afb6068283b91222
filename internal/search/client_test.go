package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbctxt/readycheck/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL: srv.URL,
		Region:  "eu",
		Retry:   common.RetryOptions{MaxAttempts: 1},
	})
	require.NoError(t, err)
	return client
}

func TestClientSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/item-search", r.URL.Path)
		assert.Equal(t, "Gorehowl", r.URL.Query().Get("name"))
		assert.Equal(t, "eu", r.URL.Query().Get("region"))
		_, _ = w.Write([]byte(`{"items":[{"id":28773,"name":"Gorehowl","quality":"epic","level":70}]}`))
	})

	items, err := client.Search(context.Background(), "Gorehowl")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 28773, items[0].ID)
	assert.Equal(t, "Gorehowl", items[0].Name)
}

func TestClientSearchEmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	items, err := client.Search(context.Background(), "Thunderfury")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClientSearchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "Gorehowl")
	assert.Error(t, err)
}

func TestClientSearchMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": not json`))
	})

	_, err := client.Search(context.Background(), "Gorehowl")
	assert.Error(t, err)
}

func TestClientSearchRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"Test Blade"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{
		BaseURL: srv.URL,
		Retry: common.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: time.Millisecond,
			MaxDelay:     2 * time.Millisecond,
		},
	})
	require.NoError(t, err)

	items, err := client.Search(context.Background(), "Test Blade")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, calls)
}

func TestConfigValidate(t *testing.T) {
	err := Config{}.Validate()
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	assert.NoError(t, Config{BaseURL: "http://localhost:3000"}.Validate())
}
