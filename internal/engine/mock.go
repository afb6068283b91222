package engine

import (
	"context"
	"sync"
)

// MockFetcher serves tooltips from a fixed map and counts fetches.
type MockFetcher struct {
	mu       sync.Mutex
	Tooltips map[int]string
	Fetches  int
}

// Fetch returns the configured tooltip for an item id.
func (m *MockFetcher) Fetch(_ context.Context, itemID int) (string, bool) {
	m.mu.Lock()
	m.Fetches++
	m.mu.Unlock()

	markup, ok := m.Tooltips[itemID]
	return markup, ok
}

// FetchCount reports how many fetches were issued.
func (m *MockFetcher) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fetches
}
