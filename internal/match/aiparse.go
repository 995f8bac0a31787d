package match

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// aiPair is one match proposal from the external reasoning service:
// zero-based indexes into the Amazon (a) and Flipkart (f) title lists.
type aiPair struct {
	A          int     `json:"a"`
	F          int     `json:"f"`
	Confidence float64 `json:"confidence"`
}

var (
	reCodeFence    = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	reUnquotedKey  = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	reTrailComma   = regexp.MustCompile(`,\s*([}\]])`)
	reRecoverPairs = regexp.MustCompile(`\{[^{}]*?"?a"?\s*:\s*(\d+)[^{}]*?"?f"?\s*:\s*(\d+)[^{}]*?"?confidence"?\s*:\s*([0-9.]+)[^{}]*\}`)
)

// parsePairs extracts match proposals from free-form model output. The
// ladder is: strict parse of the whole payload, then the first balanced
// JSON array found by bracket-depth counting, then the same after lenient
// quote/key normalization, and finally per-object regex recovery. An error
// from every rung means the caller should fall back to the lexical
// strategy; it is never fatal.
func parsePairs(raw string) ([]aiPair, error) {
	text := strings.TrimSpace(raw)
	if m := reCodeFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	var pairs []aiPair
	if err := json.Unmarshal([]byte(text), &pairs); err == nil {
		return pairs, nil
	}

	if arr, ok := balancedArray(text); ok {
		if err := json.Unmarshal([]byte(arr), &pairs); err == nil {
			return pairs, nil
		}
		lenient := lenientNormalize(arr)
		if err := json.Unmarshal([]byte(lenient), &pairs); err == nil {
			return pairs, nil
		}
	}

	// last resort: pick the fields out of each object individually
	for _, m := range reRecoverPairs.FindAllStringSubmatch(text, -1) {
		a, errA := strconv.Atoi(m[1])
		f, errF := strconv.Atoi(m[2])
		conf, errC := strconv.ParseFloat(m[3], 64)
		if errA != nil || errF != nil || errC != nil {
			continue
		}
		pairs = append(pairs, aiPair{A: a, F: f, Confidence: conf})
	}
	if len(pairs) > 0 {
		return pairs, nil
	}
	return nil, fmt.Errorf("no match array found in model output")
}

// balancedArray returns the first balanced [...] span in text, found with
// bracket-depth counting that ignores brackets inside string literals.
func balancedArray(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, c := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			if depth == 0 {
				start = i
			}
			depth++
		case ']':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// lenientNormalize repairs the common near-JSON quirks of model output:
// single-quoted strings and keys, unquoted keys, and trailing commas.
func lenientNormalize(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = reUnquotedKey.ReplaceAllString(s, `$1"$2":`)
	s = reTrailComma.ReplaceAllString(s, "$1")
	return s
}
