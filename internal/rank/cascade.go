package rank

import (
	"context"

	"shopmind/internal/catalog"
	"shopmind/internal/entity"
	"shopmind/internal/logging"
)

// =============================================================================
// FALLBACK CASCADE - progressively broader catalog queries
// =============================================================================

// Fetcher runs the degrade-and-retry fetch policy over a catalog searcher.
// Provider errors are treated the same as empty results so that a flaky
// backend degrades to the no-results path instead of failing the turn.
type Fetcher struct {
	searcher catalog.Searcher
}

// NewFetcher wraps a catalog searcher with the cascade policy.
func NewFetcher(s catalog.Searcher) *Fetcher {
	return &Fetcher{searcher: s}
}

// Fetch attempts up to four progressively broader queries and returns the
// first non-empty candidate set. An empty slice means every stage came back
// empty and the caller should take the no-results path.
func (f *Fetcher) Fetch(ctx context.Context, ents entity.Entities) []catalog.ProductHit {
	wideLimit := 80
	if len(ents.Characteristics) > 0 {
		// Give the local characteristic filter more raw material.
		wideLimit = 140
	}

	stages := []struct {
		name     string
		term     string
		category string
		color    string
		limit    int
	}{
		{"full", ents.SearchTerm, ents.Category, ents.Color, 40},
		{"category-only", "", ents.Category, "", 80},
		{"color-only", "", "", ents.Color, 80},
		{"unfiltered", "", "", "", wideLimit},
	}

	for _, st := range stages {
		hits, err := f.searcher.Search(ctx, st.term, st.category, st.color, st.limit)
		if err != nil {
			logging.CatalogWarn("cascade stage %s failed, treating as empty: %v", st.name, err)
			continue
		}
		if len(hits) > 0 {
			logging.Rank("cascade stage %s returned %d candidates", st.name, len(hits))
			return hits
		}
	}

	logging.Rank("cascade exhausted with zero candidates")
	return nil
}
