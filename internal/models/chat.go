package models

// Chat actions the assistant can return.
const (
	ActionReply     = "reply"
	ActionSearch    = "search"
	ActionRecommend = "recommend"
)

// Recommendation criteria.
const (
	CriteriaBest     = "best"
	CriteriaCheapest = "cheapest"
	CriteriaRating   = "rating"
	CriteriaCompare  = "compare"
)

// ChatRequest is the payload for the assistant endpoint. CurrentProducts
// carries the products currently loaded in the caller's view so the
// assistant can recommend from them.
type ChatRequest struct {
	Message         string           `json:"message"`
	CurrentProducts []UnifiedProduct `json:"current_products,omitempty"`
}

// ChatResponse is the assistant's structured intent plus display text.
type ChatResponse struct {
	Success             bool             `json:"success"`
	Action              string           `json:"action"`
	Reply               string           `json:"reply"`
	SearchQuery         string           `json:"search_query,omitempty"`
	RecommendedProducts []UnifiedProduct `json:"recommended_products,omitempty"`
	Error               string           `json:"error,omitempty"`
}

// CompareRequest asks for a deep spec comparison of selected products.
type CompareRequest struct {
	Products []UnifiedProduct `json:"products"`
}

// ComparedProduct is one product enriched with scraped spec key/values.
type ComparedProduct struct {
	Title         string            `json:"title"`
	Image         string            `json:"image,omitempty"`
	Rating        *float64          `json:"rating,omitempty"`
	AmazonPrice   *float64          `json:"amazon_price"`
	FlipkartPrice *float64          `json:"flipkart_price"`
	AmazonLink    string            `json:"amazon_link,omitempty"`
	FlipkartLink  string            `json:"flipkart_link,omitempty"`
	Specs         map[string]string `json:"specs"`
}

// CompareResponse is the payload returned by the compare endpoint.
type CompareResponse struct {
	Success    bool              `json:"success"`
	Comparison []ComparedProduct `json:"comparison"`
	ElapsedMS  int64             `json:"elapsed_ms"`
	Error      string            `json:"error,omitempty"`
}
