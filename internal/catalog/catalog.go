// Package catalog defines the product model the engine reads and the
// Searcher capability it fetches candidates through. The catalog itself is
// owned elsewhere; implementations here are thin read-only clients.
package catalog

import (
	"context"
	"strings"
)

// Variant is a purchasable variation of a product.
type Variant struct {
	SKU   string `json:"sku,omitempty"`
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// ProductHit is one catalog row as returned by a search. The engine only
// reads it.
type ProductHit struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Brand     string    `json:"brand,omitempty"`
	Material  string    `json:"material,omitempty"`
	Tags      string    `json:"tags,omitempty"`
	RatingAvg *float64  `json:"ratingAvg,omitempty"`
	Variants  []Variant `json:"variants,omitempty"`
}

// Rating returns the average rating, or 0 when the product has none.
func (p ProductHit) Rating() float64 {
	if p.RatingAvg == nil {
		return 0
	}
	return *p.RatingAvg
}

// SearchableText returns the lowercased blob the ranker matches tokens
// against: name, category, brand, material, tags, and every variant field,
// space-joined.
func (p ProductHit) SearchableText() string {
	parts := []string{p.Name, p.Category, p.Brand, p.Material, p.Tags}
	for _, v := range p.Variants {
		parts = append(parts, v.Color, v.Size, v.SKU)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Searcher is the catalog query contract: best-effort substring/keyword
// search. Implementations return an empty slice (with or without an error)
// when nothing matches or the provider fails; callers treat both the same.
type Searcher interface {
	Search(ctx context.Context, term, category, color string, limit int) ([]ProductHit, error)
}
