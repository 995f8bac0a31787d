package scrape

import (
	"context"
	"strings"

	"github.com/go-rod/rod"
	"go.uber.org/zap"
)

// spec tables past this row count are footer noise, not product data
const maxSpecs = 40

// Details visits one product page and extracts its technical specification
// table as key/value pairs. An unreachable or unparsable page yields an
// empty map.
func (s *Scraper) Details(ctx context.Context, link string) map[string]string {
	specs := make(map[string]string)
	if link == "" {
		return specs
	}

	err := rod.Try(func() {
		page := s.preparePage(link).
			Context(ctx).
			Timeout(s.opts.PageTimeout)
		defer page.MustClose()

		// Amazon technical details table
		collectTableRows(page, "#productDetails_techSpec_section_1 tr", "th", "td", specs)
		// Amazon detail bullets ("Brand: Samsung" style list items)
		collectBulletRows(page, "#detailBullets_feature_div li", specs)
		// Flipkart specification rows
		collectTableRows(page, "div._3k-BhJ table tr", "td:first-child", "td:last-child", specs)
		if len(specs) == 0 {
			collectTableRows(page, "table tr", "td:first-child", "td:last-child", specs)
		}
	})
	if err != nil {
		s.logger.Warn("detail scrape failed", zap.String("link", link), zap.Error(err))
	}
	return specs
}

func collectTableRows(page *rod.Page, rowSel, keySel, valSel string, specs map[string]string) {
	rows, err := page.Elements(rowSel)
	if err != nil {
		return
	}
	for _, row := range rows {
		if len(specs) >= maxSpecs {
			return
		}
		key := cleanSpec(firstText(row, keySel))
		val := cleanSpec(firstText(row, valSel))
		if key == "" || val == "" || key == val {
			continue
		}
		if _, exists := specs[key]; !exists {
			specs[key] = val
		}
	}
}

func collectBulletRows(page *rod.Page, sel string, specs map[string]string) {
	items, err := page.Elements(sel)
	if err != nil {
		return
	}
	for _, item := range items {
		if len(specs) >= maxSpecs {
			return
		}
		text, err := item.Text()
		if err != nil {
			continue
		}
		key, val, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		key, val = cleanSpec(key), cleanSpec(val)
		if key == "" || val == "" {
			continue
		}
		if _, exists := specs[key]; !exists {
			specs[key] = val
		}
	}
}

// cleanSpec strips the zero-width and directional characters Amazon embeds
// in its detail bullets.
func cleanSpec(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '‎', '‏', '​':
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
