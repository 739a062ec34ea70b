package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *SQLiteSearcher {
	t.Helper()
	s, err := NewSQLiteSearcher(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	rating := 4.2
	seed := []ProductHit{
		{ID: 1, Name: "Trail Jacket", Category: "Jacket", Price: 89.9, Brand: "Northpoint",
			Material: "Gore-Tex", Tags: "outdoor,waterproof", RatingAvg: &rating,
			Variants: []Variant{{SKU: "TJ-1", Color: "Blue", Size: "M"}, {SKU: "TJ-2", Color: "Black", Size: "L"}}},
		{ID: 2, Name: "City Coat", Category: "Jacket", Price: 140,
			Variants: []Variant{{SKU: "CC-1", Color: "Beige", Size: "M"}}},
		{ID: 3, Name: "Canvas Tote", Category: "Bag", Price: 25, Tags: "everyday"},
	}
	for _, p := range seed {
		require.NoError(t, s.Upsert(context.Background(), p))
	}
	return s
}

func TestSQLiteSearchByTerm(t *testing.T) {
	s := newTestCatalog(t)

	hits, err := s.Search(context.Background(), "waterproof jacket", "", "", 10)
	require.NoError(t, err)
	// "waterproof" matches tags on product 1, "jacket" matches name on 1 only;
	// word clauses are OR-joined so product 1 is the sole hit by product text.
	require.Len(t, hits, 1)
	require.Equal(t, int64(1), hits[0].ID)
	require.NotNil(t, hits[0].RatingAvg)
	require.Equal(t, 4.2, *hits[0].RatingAvg)
	require.Len(t, hits[0].Variants, 2)
	require.Equal(t, "Blue", hits[0].Variants[0].Color)
}

func TestSQLiteSearchByCategory(t *testing.T) {
	s := newTestCatalog(t)

	hits, err := s.Search(context.Background(), "", "jacket", "", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	require.Equal(t, int64(1), hits[0].ID)
	require.Equal(t, int64(2), hits[1].ID)
	require.Nil(t, hits[1].RatingAvg)
}

func TestSQLiteSearchColorFilter(t *testing.T) {
	s := newTestCatalog(t)

	hits, err := s.Search(context.Background(), "", "jacket", "blue", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Trail Jacket", hits[0].Name)

	hits, err = s.Search(context.Background(), "", "", "green", 10)
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestSQLiteSearchLimit(t *testing.T) {
	s := newTestCatalog(t)

	hits, err := s.Search(context.Background(), "", "", "", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
}

func TestSQLiteUpsertReplaces(t *testing.T) {
	s := newTestCatalog(t)

	updated := ProductHit{ID: 1, Name: "Trail Jacket v2", Category: "Jacket", Price: 99.9,
		Variants: []Variant{{SKU: "TJ-3", Color: "Red", Size: "S"}}}
	require.NoError(t, s.Upsert(context.Background(), updated))

	hits, err := s.Search(context.Background(), "trail", "", "", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Trail Jacket v2", hits[0].Name)
	// Old variants are cleared on upsert, not accumulated.
	require.Len(t, hits[0].Variants, 1)
	require.Equal(t, "Red", hits[0].Variants[0].Color)
}
