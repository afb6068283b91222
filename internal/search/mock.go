package search

import (
	"context"
	"strings"
	"sync"
)

// MockSearcher is a test double that serves candidates from a fixed list and
// records the queries it received.
type MockSearcher struct {
	mu         sync.Mutex
	Candidates []Candidate
	Err        error
	Queries    []string
}

// Search returns the configured error, or every candidate whose name relates
// to the query by case-insensitive substring containment.
func (m *MockSearcher) Search(_ context.Context, name string) ([]Candidate, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, name)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	lower := strings.ToLower(name)
	var out []Candidate
	for _, c := range m.Candidates {
		cl := strings.ToLower(c.Name)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			out = append(out, c)
		}
	}
	return out, nil
}

// QueryCount reports how many searches were issued.
func (m *MockSearcher) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}
