package rank

import (
	"sort"
	"strings"

	"shopmind/internal/catalog"
	"shopmind/internal/entity"
	"shopmind/internal/intent"
	"shopmind/internal/knowledge"
	"shopmind/internal/logging"
)

// =============================================================================
// PRODUCT RANKING - entity-weighted scoring over candidate products
// =============================================================================

// MaxResults is the size of the final ranked list shown to the shopper.
const MaxResults = 8

// Scored pairs a product with its relevance score for one ranking pass.
type Scored struct {
	catalog.ProductHit
	Score                 float64
	CharacteristicMatches int
}

// Rank scores candidates against the message and extracted entities, sorts
// descending, filters characteristic misses, and truncates to MaxResults.
func Rank(candidates []catalog.ProductHit, message string, ents entity.Entities, src knowledge.Source) []Scored {
	var messageTokens []string
	for _, tok := range intent.Tokenize(message, src) {
		if len(tok) >= 3 {
			messageTokens = append(messageTokens, tok)
		}
	}

	scored := make([]Scored, 0, len(candidates))
	for _, p := range candidates {
		s := score(p, messageTokens, ents)
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	// The characteristic filter runs after sorting so a later relaxation of
	// it would still see the full ordered list.
	if len(ents.Characteristics) > 0 {
		filtered := scored[:0]
		for _, s := range scored {
			if s.CharacteristicMatches > 0 {
				filtered = append(filtered, s)
			}
		}
		scored = filtered
	}

	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}

	logging.RankDebug("ranked %d candidates -> %d results (tokens=%v category=%q color=%q)",
		len(candidates), len(scored), messageTokens, ents.Category, ents.Color)
	return scored
}

// Products strips scores back off for emission and stats.
func Products(scored []Scored) []catalog.ProductHit {
	out := make([]catalog.ProductHit, len(scored))
	for i, s := range scored {
		out[i] = s.ProductHit
	}
	return out
}

func score(p catalog.ProductHit, messageTokens []string, ents entity.Entities) Scored {
	text := p.SearchableText()
	s := Scored{ProductHit: p}

	for _, tok := range messageTokens {
		if strings.Contains(text, tok) {
			s.Score += 2
		}
	}

	if ents.Category != "" && strings.Contains(strings.ToLower(p.Category), ents.Category) {
		s.Score += 3
	}

	if ents.Color != "" {
		if hasColorVariant(p, ents.Color) {
			s.Score += 5
		} else {
			s.Score -= 4
		}
	}

	if ents.Budget != nil {
		budget := *ents.Budget
		if p.Price <= budget {
			s.Score += 2
		} else {
			overage := (p.Price - budget) / maxFloat(budget, 1)
			s.Score -= minFloat(3, overage)
		}
	}

	if len(ents.Characteristics) > 0 {
		for _, c := range ents.Characteristics {
			if strings.Contains(text, c) {
				s.CharacteristicMatches++
			}
		}
		s.Score += float64(s.CharacteristicMatches) * 2.5
		if s.CharacteristicMatches == 0 {
			s.Score -= 3
		}
	}

	s.Score += 0.5 * p.Rating()
	return s
}

func hasColorVariant(p catalog.ProductHit, color string) bool {
	for _, v := range p.Variants {
		if strings.EqualFold(v.Color, color) {
			return true
		}
	}
	return false
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
