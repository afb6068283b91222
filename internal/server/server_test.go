package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbctxt/readycheck/internal/engine"
	"github.com/tbctxt/readycheck/internal/refdata"
	"github.com/tbctxt/readycheck/internal/resolver"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := refdata.Load("")
	require.NoError(t, err)

	res := resolver.New(store, nil)
	checker := engine.New(store, res, &engine.MockFetcher{}, engine.Config{})
	return New(Config{Debug: false}, store, res, checker)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestClassesEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/classes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Classes []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"classes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Classes, 2)
	assert.Equal(t, "priest", body.Classes[0].Key)
	assert.Equal(t, "Priest", body.Classes[0].Name)
}

func TestClassEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/classes/warrior", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "protection")

	w = doRequest(t, s, http.MethodGet, "/api/classes/mage", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpecEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/classes/warrior/protection", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"tank"`)
	assert.Contains(t, w.Body.String(), "Tankatronic Goggles")
	// BiS rows serialize with the same camelCase keys as the report types
	assert.Contains(t, w.Body.String(), `"slot":"HELM"`)
	assert.NotContains(t, w.Body.String(), `"Slot"`)

	w = doRequest(t, s, http.MethodGet, "/api/classes/warrior/arcane", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemSearchEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/items/search?q=gorehowl", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":28773`)

	w = doRequest(t, s, http.MethodGet, "/api/items/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemLookupEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/item/Gorehowl", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":28773`)

	w = doRequest(t, s, http.MethodGet, "/api/item/Thunderfury", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckEndpoint(t *testing.T) {
	s := newTestServer(t)

	body := `{"class":"warrior","spec":"protection","phase":"1","gear":"King's Defender"}`
	w := doRequest(t, s, http.MethodPost, "/api/check", body)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Body.String(), `"verdict":"NOT READY"`)
	assert.Contains(t, w.Body.String(), `"role":"tank"`)

	w = doRequest(t, s, http.MethodPost, "/api/check", `{"spec":"protection"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
