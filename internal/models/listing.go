// Package models defines core data structures for listings, unified products, and API payloads.
package models

// Source identifies which e-commerce site a listing was scraped from.
type Source string

const (
	SourceAmazon   Source = "amazon"
	SourceFlipkart Source = "flipkart"
)

// Listing is one scraped product entry from a single source.
// It is immutable once produced by the scraper; a nil Price means the
// listing cannot participate in a price comparison.
type Listing struct {
	Title   string   `json:"title"`
	Price   *float64 `json:"price"`
	Image   string   `json:"image,omitempty"`
	Link    string   `json:"link,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
	Source  Source   `json:"source"`
	IsPrime bool     `json:"is_prime"`
}

// UnifiedProduct is the merged output record representing one physical
// product across both sources, or an unmatched singleton from either side.
// ID is 1-based and reassigned after the final matched-first sort; it is
// stable only within one response.
type UnifiedProduct struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Image           string   `json:"image,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	IsPrime         bool     `json:"is_prime"`
	AmazonPrice     *float64 `json:"amazon_price"`
	AmazonLink      string   `json:"amazon_link,omitempty"`
	FlipkartPrice   *float64 `json:"flipkart_price"`
	FlipkartLink    string   `json:"flipkart_link,omitempty"`
	HasComparison   bool     `json:"has_comparison"`
	MatchConfidence float64  `json:"match_confidence"`
}

// MinPrice returns the lowest non-nil price across both sources, and false
// when neither source has a price.
func (p *UnifiedProduct) MinPrice() (float64, bool) {
	switch {
	case p.AmazonPrice != nil && p.FlipkartPrice != nil:
		if *p.AmazonPrice < *p.FlipkartPrice {
			return *p.AmazonPrice, true
		}
		return *p.FlipkartPrice, true
	case p.AmazonPrice != nil:
		return *p.AmazonPrice, true
	case p.FlipkartPrice != nil:
		return *p.FlipkartPrice, true
	}
	return 0, false
}

// Savings returns the absolute price difference when both sources have a
// price, otherwise 0.
func (p *UnifiedProduct) Savings() float64 {
	if p.AmazonPrice == nil || p.FlipkartPrice == nil {
		return 0
	}
	d := *p.AmazonPrice - *p.FlipkartPrice
	if d < 0 {
		d = -d
	}
	return d
}

// RatingOrZero returns the rating, or 0 when unrated.
func (p *UnifiedProduct) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}
