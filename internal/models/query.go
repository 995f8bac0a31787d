package models

import "fmt"

// Sort names a result ordering.
type Sort = string

// Sort options for search results.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// Strategy names a listing-matching approach.
type Strategy = string

// Matching strategies selectable per request.
const (
	StrategyEmbedding = "embedding"
	StrategyAI        = "ai"
	StrategyLexical   = "lexical"
)

// SearchQuery represents one product search request.
type SearchQuery struct {
	Query    string `json:"query"`
	Sort     string `json:"sort,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Mock     bool   `json:"mock,omitempty"`
}

// Validate ensures the query has valid fields and sets defaults.
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	switch q.Sort {
	case "":
		q.Sort = SortRelevance
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortRating:
	default:
		return fmt.Errorf("unknown sort option: %s", q.Sort)
	}
	switch q.Strategy {
	case "":
		q.Strategy = StrategyEmbedding
	case StrategyEmbedding, StrategyAI, StrategyLexical:
	default:
		return fmt.Errorf("unknown match strategy: %s", q.Strategy)
	}
	return nil
}

// SearchResponse is the payload returned by the search endpoint.
type SearchResponse struct {
	Success    bool             `json:"success"`
	Query      string           `json:"query"`
	Count      int              `json:"count"`
	IsFallback bool             `json:"is_fallback"`
	Products   []UnifiedProduct `json:"products"`
	ElapsedMS  int64            `json:"elapsed_ms"`
	Error      string           `json:"error,omitempty"`
}
