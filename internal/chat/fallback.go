package chat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopsync/shopsync/internal/models"
)

var reBudget = regexp.MustCompile(`under\s*₹?\s*(\d[\d,]*)`)

// anyKeyword matches keywords against whole words of msg, by prefix so
// "cheapest" hits "cheap". Substring matching would route "laptop" to "top".
func anyKeyword(msg string, keywords ...string) bool {
	words := strings.Fields(msg)
	for _, kw := range keywords {
		for _, w := range words {
			if strings.HasPrefix(w, kw) {
				return true
			}
		}
	}
	return false
}

// processKeywords is the no-model fallback: route the message on keyword
// heuristics. The second return is false only when even the heuristics have
// nothing to say.
func processKeywords(message string, products []models.UnifiedProduct) (models.ChatResponse, bool) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return models.ChatResponse{}, false
	}

	if anyKeyword(msg, "best", "recommend", "top", "suggest", "deal") && len(products) > 0 {
		return RecommendBest(products, models.CriteriaBest, nil), true
	}

	if anyKeyword(msg, "cheap", "lowest", "budget", "affordable") && len(products) > 0 {
		var budget *float64
		if m := reBudget.FindStringSubmatch(msg); m != nil {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
				budget = &v
			}
		}
		return RecommendBest(products, models.CriteriaCheapest, budget), true
	}

	if anyKeyword(msg, "rated", "rating", "stars", "popular") && len(products) > 0 {
		return RecommendBest(products, models.CriteriaRating, nil), true
	}

	if anyKeyword(msg, "compare", "vs", "versus") && len(products) > 0 {
		return CompareProducts(products), true
	}

	// Multi-word messages read like product descriptions; treat them as a
	// search.
	if len(strings.Fields(msg)) >= 2 {
		return models.ChatResponse{
			Success:     true,
			Action:      models.ActionSearch,
			SearchQuery: msg,
			Reply:       "Searching for **\"" + msg + "\"**...",
		}, true
	}

	return models.ChatResponse{
		Success: true,
		Action:  models.ActionReply,
		Reply:   "Tell me what you're looking for, or ask about the current search results!",
	}, true
}
