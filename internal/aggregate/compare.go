package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/models"
)

const (
	minCompareProducts = 2
	maxCompareProducts = 4
)

// Detailer scrapes one product page's specification table.
type Detailer interface {
	Details(ctx context.Context, link string) map[string]string
}

// Comparer enriches selected products with scraped technical specs.
type Comparer struct {
	detailer Detailer
	logger   *zap.Logger
}

// NewComparer builds a comparer over the given detail scraper.
func NewComparer(detailer Detailer, logger *zap.Logger) *Comparer {
	return &Comparer{detailer: detailer, logger: logger}
}

// Compare deep-scrapes each product's pages and merges the spec tables,
// Amazon values winning over Flipkart on key collision.
func (c *Comparer) Compare(ctx context.Context, req models.CompareRequest) models.CompareResponse {
	start := time.Now()

	if len(req.Products) < minCompareProducts {
		return models.CompareResponse{
			Error: "at least 2 products are required for comparison",
		}
	}
	if len(req.Products) > maxCompareProducts {
		return models.CompareResponse{
			Error: "maximum 4 products can be compared at once",
		}
	}

	results := make([]models.ComparedProduct, 0, len(req.Products))
	for _, p := range req.Products {
		specs := make(map[string]string)
		if c.detailer == nil {
			results = append(results, comparedProduct(p, specs))
			continue
		}
		if p.FlipkartLink != "" {
			for k, v := range c.detailer.Details(ctx, p.FlipkartLink) {
				specs[k] = v
			}
		}
		if p.AmazonLink != "" {
			for k, v := range c.detailer.Details(ctx, p.AmazonLink) {
				specs[k] = v
			}
		}
		results = append(results, comparedProduct(p, specs))
	}

	c.logger.Info("comparison finished",
		zap.Int("products", len(results)),
		zap.Duration("elapsed", time.Since(start)))
	return models.CompareResponse{
		Success:    true,
		Comparison: results,
		ElapsedMS:  time.Since(start).Milliseconds(),
	}
}

func comparedProduct(p models.UnifiedProduct, specs map[string]string) models.ComparedProduct {
	return models.ComparedProduct{
		Title:         p.Title,
		Image:         p.Image,
		Rating:        p.Rating,
		AmazonPrice:   p.AmazonPrice,
		FlipkartPrice: p.FlipkartPrice,
		AmazonLink:    p.AmazonLink,
		FlipkartLink:  p.FlipkartLink,
		Specs:         specs,
	}
}
