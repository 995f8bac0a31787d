package identify

import (
	"regexp"
	"strings"
)

var (
	rePunct    = regexp.MustCompile(`[()\[\]{},;:|!?"]`)
	reUnitJoin = regexp.MustCompile(`(\d+)\s+(gb|tb)\b`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// Normalize lowercases a title, strips bracket and punctuation noise, joins
// split storage units ("128 GB" -> "128gb"), removes marketing filler words,
// and drops single-character tokens. The result feeds the bag-of-words
// lexical fallback only; identifier extraction always works on the raw title.
func Normalize(title string) string {
	t := strings.ToLower(title)
	t = rePunct.ReplaceAllString(t, " ")
	t = reUnitJoin.ReplaceAllString(t, "${1}${2}")
	t = reSpaces.ReplaceAllString(t, " ")

	words := strings.Fields(t)
	kept := words[:0]
	for _, w := range words {
		if len(w) <= 1 || noiseWords[w] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// WordSet returns the bag-of-words of a normalized title.
func WordSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		set[w] = true
	}
	return set
}
