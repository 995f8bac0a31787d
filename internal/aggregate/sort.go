package aggregate

import (
	"math"
	"sort"

	"github.com/shopsync/shopsync/internal/models"
)

// sortProducts reorders in place per the requested option. Relevance keeps
// the matcher's order (matched products first). Sorts are stable so equal
// keys preserve that order.
func sortProducts(products []models.UnifiedProduct, by models.Sort) {
	switch by {
	case models.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return minPriceOrInf(products[i]) < minPriceOrInf(products[j])
		})
	case models.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return minPriceOrInf(products[i]) > minPriceOrInf(products[j])
		})
	case models.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].RatingOrZero() > products[j].RatingOrZero()
		})
	}
	for i := range products {
		products[i].ID = i + 1
	}
}

func minPriceOrInf(p models.UnifiedProduct) float64 {
	if v, ok := p.MinPrice(); ok {
		return v
	}
	return math.Inf(1)
}
