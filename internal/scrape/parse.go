package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-rod/rod"
)

var (
	rePriceNoise = regexp.MustCompile(`[₹$,\s]`)
	reFirstFloat = regexp.MustCompile(`(\d+\.?\d*)`)
)

// ParsePrice extracts the whole-rupee amount from display text such as
// "₹1,29,900" or "₹32,999.00". Returns nil when no number is present.
func ParsePrice(text string) *float64 {
	cleaned := rePriceNoise.ReplaceAllString(text, "")
	if cleaned == "" {
		return nil
	}
	// Paise are display noise on listing cards.
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		cleaned = cleaned[:i]
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseRating extracts the leading numeric rating from texts like
// "4.3 out of 5 stars" or "4.6★". Returns nil when absent or out of range.
func ParseRating(text string) *float64 {
	m := reFirstFloat.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 || v > 5 {
		return nil
	}
	return &v
}

// firstText returns the text of the first selector that resolves under el.
func firstText(el *rod.Element, selectors ...string) string {
	for _, sel := range selectors {
		child, err := el.Element(sel)
		if err != nil {
			continue
		}
		text, err := child.Text()
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

// firstAttr returns the named attribute of the first selector that resolves
// under el.
func firstAttr(el *rod.Element, attr string, selectors ...string) string {
	for _, sel := range selectors {
		child, err := el.Element(sel)
		if err != nil {
			continue
		}
		val, err := child.Attribute(attr)
		if err == nil && val != nil && *val != "" {
			return *val
		}
	}
	return ""
}

// absoluteLink resolves scheme-relative and path-relative hrefs against the
// site origin, and repairs the double-prefix artifact some cards carry.
func absoluteLink(href, origin string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		return origin + href
	}
	if bad := origin + "https"; strings.Contains(href, bad) {
		return strings.Replace(href, bad, "https", 1)
	}
	return href
}
