package rank

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"shopmind/internal/catalog"
	"shopmind/internal/entity"
)

// stubSearcher records every query and replays canned answers.
type stubSearcher struct {
	calls   []stubCall
	results func(call int) ([]catalog.ProductHit, error)
}

type stubCall struct {
	term, category, color string
	limit                 int
}

func (s *stubSearcher) Search(_ context.Context, term, category, color string, limit int) ([]catalog.ProductHit, error) {
	s.calls = append(s.calls, stubCall{term, category, color, limit})
	if s.results == nil {
		return nil, nil
	}
	return s.results(len(s.calls))
}

func TestCascadeExhaustsFourStages(t *testing.T) {
	stub := &stubSearcher{}
	f := NewFetcher(stub)

	hits := f.Fetch(context.Background(), entity.Entities{
		SearchTerm: "hiking jacket", Category: "jacket", Color: "Blue",
	})

	assert.Empty(t, hits)
	assert.Equal(t, []stubCall{
		{"hiking jacket", "jacket", "Blue", 40},
		{"", "jacket", "", 80},
		{"", "", "Blue", 80},
		{"", "", "", 80},
	}, stub.calls)
}

func TestCascadeWidensFinalStageForCharacteristics(t *testing.T) {
	stub := &stubSearcher{}
	f := NewFetcher(stub)

	f.Fetch(context.Background(), entity.Entities{Characteristics: []string{"waterproof"}})

	last := stub.calls[len(stub.calls)-1]
	assert.Equal(t, 140, last.limit)
}

func TestCascadeStopsAtFirstHit(t *testing.T) {
	product := catalog.ProductHit{ID: 7, Name: "Jacket", Category: "Jacket", Price: 90}
	stub := &stubSearcher{
		results: func(call int) ([]catalog.ProductHit, error) {
			if call == 2 {
				return []catalog.ProductHit{product}, nil
			}
			return nil, nil
		},
	}
	f := NewFetcher(stub)

	hits := f.Fetch(context.Background(), entity.Entities{Category: "jacket"})

	assert.Len(t, stub.calls, 2)
	assert.Equal(t, int64(7), hits[0].ID)
}

func TestCascadeTreatsErrorsAsEmpty(t *testing.T) {
	product := catalog.ProductHit{ID: 3, Name: "Jacket", Category: "Jacket", Price: 70}
	stub := &stubSearcher{
		results: func(call int) ([]catalog.ProductHit, error) {
			if call < 4 {
				return nil, errors.New("backend down")
			}
			return []catalog.ProductHit{product}, nil
		},
	}
	f := NewFetcher(stub)

	hits := f.Fetch(context.Background(), entity.Entities{Category: "jacket", Color: "Blue"})

	assert.Len(t, stub.calls, 4)
	assert.Len(t, hits, 1)
}
