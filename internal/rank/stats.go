package rank

import (
	"math"
	"sort"
	"strings"

	"shopmind/internal/catalog"
)

// =============================================================================
// RESULT STATISTICS - aggregate view of the shown products
// =============================================================================

// ProductStats summarizes the price and rating distribution of the final
// result list. All fields are zero for an empty list.
type ProductStats struct {
	Count             int     `json:"count"`
	MeanPrice         float64 `json:"meanPrice"`
	MedianPrice       float64 `json:"medianPrice"`
	StdPrice          float64 `json:"stdPrice"`
	MinPrice          float64 `json:"minPrice"`
	MaxPrice          float64 `json:"maxPrice"`
	MeanRating        float64 `json:"meanRating"`
	CategoryDiversity int     `json:"categoryDiversity"`
}

// Stats computes aggregate statistics over the shown products. The median is
// the element at index n/2 of the sorted price list, which for even-length
// lists is the upper-middle element rather than the averaged midpoint.
func Stats(products []catalog.ProductHit) ProductStats {
	if len(products) == 0 {
		return ProductStats{}
	}

	prices := make([]float64, len(products))
	for i, p := range products {
		prices[i] = p.Price
	}
	sort.Float64s(prices)

	var sum float64
	for _, price := range prices {
		sum += price
	}
	mean := sum / float64(len(prices))

	var variance float64
	for _, price := range prices {
		d := price - mean
		variance += d * d
	}
	variance /= float64(len(prices))

	var ratingSum float64
	rated := 0
	categories := make(map[string]struct{})
	for _, p := range products {
		if p.RatingAvg != nil {
			ratingSum += *p.RatingAvg
			rated++
		}
		categories[strings.ToLower(p.Category)] = struct{}{}
	}
	meanRating := 0.0
	if rated > 0 {
		meanRating = ratingSum / float64(rated)
	}

	return ProductStats{
		Count:             len(products),
		MeanPrice:         mean,
		MedianPrice:       prices[len(prices)/2],
		StdPrice:          math.Sqrt(variance),
		MinPrice:          prices[0],
		MaxPrice:          prices[len(prices)-1],
		MeanRating:        meanRating,
		CategoryDiversity: len(categories),
	}
}
