package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/models"
)

const amazonOrigin = "https://www.amazon.in"

// Amazon scrapes the Amazon India search results for query. Any failure,
// including a page timeout, yields an empty slice rather than an error: a
// missing side only reduces match coverage.
func (s *Scraper) Amazon(ctx context.Context, query string) []models.Listing {
	searchURL := amazonOrigin + "/s?k=" + url.QueryEscape(query)

	var listings []models.Listing
	err := rod.Try(func() {
		page := s.preparePage(searchURL).
			Context(ctx).
			Timeout(s.opts.PageTimeout)
		defer page.MustClose()

		page.MustElement("[data-component-type='s-search-result']")
		scrollThrough(page)

		containers := page.MustElements("[data-component-type='s-search-result']")
		for i, c := range containers {
			if i >= s.opts.MaxResults {
				break
			}
			if l, ok := s.parseAmazonCard(c); ok {
				listings = append(listings, l)
			}
		}
	})
	if err != nil {
		s.logger.Warn("amazon scrape failed",
			zap.String("query", query), zap.Error(err))
		return nil
	}
	s.logger.Info("amazon scrape finished",
		zap.String("query", query), zap.Int("listings", len(listings)))
	return listings
}

func (s *Scraper) parseAmazonCard(c *rod.Element) (models.Listing, bool) {
	title := firstText(c, "h2 a span", "h2 span", "span.a-size-medium", "span.a-text-normal")
	price := ParsePrice(firstText(c, ".a-price-whole"))
	if title == "" || price == nil {
		return models.Listing{}, false
	}

	link := absoluteLink(
		firstAttr(c, "href", "h2 a", "a.a-link-normal.s-underline-text", "a.a-link-normal.s-no-outline"),
		amazonOrigin)

	rating := ParseRating(firstText(c, ".a-icon-star-small span", ".a-icon-alt"))
	_, primeErr := c.Element(".a-icon-prime, [aria-label*='Prime']")

	return models.Listing{
		Title:   strings.TrimSpace(title),
		Price:   price,
		Image:   firstAttr(c, "src", "img.s-image"),
		Link:    link,
		Rating:  rating,
		Source:  models.SourceAmazon,
		IsPrime: primeErr == nil,
	}, true
}
