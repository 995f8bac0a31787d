package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/models"
)

const flipkartOrigin = "https://www.flipkart.com"

// Flipkart scrapes the Flipkart search results for query. Mirrors Amazon's
// failure behavior: errors produce an empty slice.
func (s *Scraper) Flipkart(ctx context.Context, query string) []models.Listing {
	searchURL := flipkartOrigin + "/search?q=" + url.QueryEscape(query)

	var listings []models.Listing
	err := rod.Try(func() {
		page := s.preparePage(searchURL).
			Context(ctx).
			Timeout(s.opts.PageTimeout)
		defer page.MustClose()

		dismissLoginPopup(page)
		scrollThrough(page)

		containers := page.MustElements("div[data-id]")
		if len(containers) == 0 {
			containers = page.MustElements("div._1AtVbE div._13oc-S")
		}
		for i, c := range containers {
			if i >= s.opts.MaxResults {
				break
			}
			if l, ok := s.parseFlipkartCard(c); ok {
				listings = append(listings, l)
			}
		}
	})
	if err != nil {
		s.logger.Warn("flipkart scrape failed",
			zap.String("query", query), zap.Error(err))
		return nil
	}
	s.logger.Info("flipkart scrape finished",
		zap.String("query", query), zap.Int("listings", len(listings)))
	return listings
}

// dismissLoginPopup closes the login overlay Flipkart shows on first visit.
// Absence of the popup is the common case and not an error.
func dismissLoginPopup(page *rod.Page) {
	btn, err := page.Element("button._2KpZ6l._2doB4z, span._30XB9F")
	if err != nil {
		return
	}
	_ = rod.Try(func() { btn.MustClick() })
	time.Sleep(time.Second)
}

func (s *Scraper) parseFlipkartCard(c *rod.Element) (models.Listing, bool) {
	title := firstText(c, "div.RG5Slk", "div._4rR01T", "a.s1Q9rs", "a.IRpwTa")
	price := ParsePrice(firstText(c, "div.hZ3P6w", "div._30jeq3", "div._1_WHN1"))
	if title == "" || price == nil {
		return models.Listing{}, false
	}

	href := firstAttr(c, "href", "a.k7wcnx", "a._1fQZEK", "a._2rpwqI", "a.CGtC98")
	if href == "" {
		href = firstAttr(c, "href", "a[href*='/p/']")
	}

	return models.Listing{
		Title:  strings.TrimSpace(title),
		Price:  price,
		Image:  firstAttr(c, "src", "img.UCc1lI", "img._396cs4", "img._2r_T1I"),
		Link:   absoluteLink(href, flipkartOrigin),
		Rating: ParseRating(firstText(c, "div.MKiFS6", "div._3LWZlK")),
		Source: models.SourceFlipkart,
	}, true
}
