package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopsync/shopsync/internal/models"
	"github.com/shopsync/shopsync/pkg/utils"
)

// RecommendBest picks up to three products from the current results by the
// given criteria, optionally filtered to a budget.
func RecommendBest(products []models.UnifiedProduct, criteria string, budget *float64) models.ChatResponse {
	if len(products) == 0 {
		return models.ChatResponse{
			Success: true,
			Action:  models.ActionReply,
			Reply:   "There are no products loaded yet. Search for something first, then ask me for recommendations!",
		}
	}

	filtered := products
	if budget != nil {
		filtered = nil
		for _, p := range products {
			if v, ok := p.MinPrice(); ok && v <= *budget {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			cheapest := cheapestOf(products)
			reply := fmt.Sprintf("No products found under ₹%.0f.", *budget)
			if v, ok := cheapest.MinPrice(); ok {
				reply += fmt.Sprintf(" The cheapest option is ₹%.0f. Try a higher budget?", v)
			}
			return models.ChatResponse{Success: true, Action: models.ActionReply, Reply: reply}
		}
	}

	sorted := make([]models.UnifiedProduct, len(filtered))
	copy(sorted, filtered)
	var label string
	switch criteria {
	case models.CriteriaCheapest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return minPriceOrMax(sorted[i]) < minPriceOrMax(sorted[j])
		})
		label = "**Cheapest Options**"
		if budget != nil {
			label = fmt.Sprintf("**Best Options Under ₹%.0f**", *budget)
		}
	case models.CriteriaRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RatingOrZero() > sorted[j].RatingOrZero()
		})
		label = "**Highest Rated Products**"
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return dealScore(sorted[i]) > dealScore(sorted[j])
		})
		label = "**Best Deals - Top Picks**"
	}

	top := sorted
	if len(top) > 3 {
		top = top[:3]
	}

	var lines []string
	lines = append(lines, label+"\n")
	for i, p := range top {
		entry := fmt.Sprintf("%d. **%s**\n   %s", i+1, utils.Truncate(p.Title, 60), priceLabel(p))
		if p.Rating != nil {
			entry += fmt.Sprintf(" | rated %.1f", *p.Rating)
		}
		if s := p.Savings(); s > 0 {
			entry += fmt.Sprintf(" | save ₹%.0f", s)
		}
		lines = append(lines, entry)
	}
	lines = append(lines, "\nHere are the product details with links:")

	return models.ChatResponse{
		Success:             true,
		Action:              models.ActionRecommend,
		Reply:               strings.Join(lines, "\n"),
		RecommendedProducts: top,
	}
}

// CompareProducts summarizes the cheapest and the highest rated of the top
// results side by side.
func CompareProducts(products []models.UnifiedProduct) models.ChatResponse {
	if len(products) < 2 {
		return models.ChatResponse{
			Success: true,
			Action:  models.ActionReply,
			Reply:   "Need at least 2 products to compare. Search for more items first!",
		}
	}

	pool := products
	if len(pool) > 10 {
		pool = pool[:10]
	}
	cheapest := cheapestOf(pool)
	topRated := pool[0]
	for _, p := range pool[1:] {
		if p.RatingOrZero() > topRated.RatingOrZero() {
			topRated = p
		}
	}

	picks := []models.UnifiedProduct{cheapest}
	if topRated.Title != cheapest.Title {
		picks = append(picks, topRated)
	}

	var b strings.Builder
	b.WriteString("**Quick Comparison**\n\n")
	fmt.Fprintf(&b, "Cheapest: %s\n   %s\n\n", utils.Truncate(cheapest.Title, 50), priceLabel(cheapest))
	fmt.Fprintf(&b, "Top Rated: %s\n   rated %.1f\n", utils.Truncate(topRated.Title, 50), topRated.RatingOrZero())

	return models.ChatResponse{
		Success:             true,
		Action:              models.ActionRecommend,
		Reply:               b.String(),
		RecommendedProducts: picks,
	}
}

// dealScore blends rating, price, cross-store savings, and comparison
// availability into one ranking number. Bigger is better.
func dealScore(p models.UnifiedProduct) float64 {
	score := p.RatingOrZero() * 20
	if v, ok := p.MinPrice(); ok {
		if priceScore := 100 - v/1000; priceScore > 0 {
			score += priceScore
		}
	}
	score += p.Savings() / 100
	if p.HasComparison {
		score += 10
	}
	return score
}

func cheapestOf(products []models.UnifiedProduct) models.UnifiedProduct {
	best := products[0]
	for _, p := range products[1:] {
		if minPriceOrMax(p) < minPriceOrMax(best) {
			best = p
		}
	}
	return best
}

func minPriceOrMax(p models.UnifiedProduct) float64 {
	if v, ok := p.MinPrice(); ok {
		return v
	}
	return 1e18
}

func priceLabel(p models.UnifiedProduct) string {
	if v, ok := p.MinPrice(); ok {
		return fmt.Sprintf("₹%.0f", v)
	}
	return "Price N/A"
}

