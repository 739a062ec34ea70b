package rank

import (
	"math"
	"testing"

	"shopmind/internal/catalog"
)

func priced(id int64, category string, price float64, r *float64) catalog.ProductHit {
	return catalog.ProductHit{ID: id, Name: "P", Category: category, Price: price, RatingAvg: r}
}

func TestStatsEmpty(t *testing.T) {
	got := Stats(nil)
	if got != (ProductStats{}) {
		t.Fatalf("Stats(nil) = %+v, want zero value", got)
	}
}

func TestStatsMedianUsesUpperMiddle(t *testing.T) {
	// Even-length list: index n/2 of the sorted prices is 30, not the
	// averaged 25.
	products := []catalog.ProductHit{
		priced(1, "A", 40, nil),
		priced(2, "A", 10, nil),
		priced(3, "A", 30, nil),
		priced(4, "A", 20, nil),
	}

	got := Stats(products)
	if got.MedianPrice != 30 {
		t.Errorf("MedianPrice = %v, want 30 (upper-middle element)", got.MedianPrice)
	}
	if got.MeanPrice != 25 {
		t.Errorf("MeanPrice = %v, want 25", got.MeanPrice)
	}
	if got.MinPrice != 10 || got.MaxPrice != 40 {
		t.Errorf("Min/Max = %v/%v, want 10/40", got.MinPrice, got.MaxPrice)
	}
}

func TestStatsPopulationStdDev(t *testing.T) {
	products := []catalog.ProductHit{
		priced(1, "A", 10, nil),
		priced(2, "A", 20, nil),
	}

	got := Stats(products)
	if math.Abs(got.StdPrice-5) > 1e-9 {
		t.Errorf("StdPrice = %v, want 5 (population, not sample)", got.StdPrice)
	}
}

func TestStatsMeanRatingSkipsUnrated(t *testing.T) {
	products := []catalog.ProductHit{
		priced(1, "A", 10, rating(4)),
		priced(2, "A", 20, nil),
		priced(3, "B", 30, rating(2)),
	}

	got := Stats(products)
	if got.MeanRating != 3 {
		t.Errorf("MeanRating = %v, want 3 (unrated products excluded)", got.MeanRating)
	}
	if got.CategoryDiversity != 2 {
		t.Errorf("CategoryDiversity = %v, want 2", got.CategoryDiversity)
	}
	if got.Count != 3 {
		t.Errorf("Count = %v, want 3", got.Count)
	}
}

func TestStatsCategoryDiversityIsCaseInsensitive(t *testing.T) {
	products := []catalog.ProductHit{
		priced(1, "Jacket", 10, nil),
		priced(2, "jacket", 20, nil),
	}

	if got := Stats(products); got.CategoryDiversity != 1 {
		t.Errorf("CategoryDiversity = %v, want 1", got.CategoryDiversity)
	}
}
