// Package search provides the remote item-search capability used as a
// fallback when an item name is not in the local reference data.
package search

import "context"

// Candidate is one item returned by the remote search service.
type Candidate struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Quality string `json:"quality,omitempty"`
	Level   int    `json:"level,omitempty"`
}

// Searcher finds item candidates by name. An empty slice with a nil error
// means the service answered and found nothing; a non-nil error means the
// service could not answer (and the caller should not memoize the miss).
type Searcher interface {
	Search(ctx context.Context, name string) ([]Candidate, error)
}
