// Package identify extracts typed, normalized identifiers from free-text
// product titles and provides title normalization for lexical scoring.
package identify

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// IdentifierSet holds the typed identifiers extracted from one title.
// A zero field means the title carries no information in that category;
// absence is never treated as a conflict by the veto engine.
type IdentifierSet struct {
	Brands        map[string]bool
	BrandFamilies map[string]bool
	Refurbished   bool
	Accessory     bool
	ScreenInches  int
	Storage       string
	RAM           string
	Resolutions   map[string]bool
	Panels        map[string]bool
	Wattage       int
	Jars          int
	Colors        map[string]bool
	Units         map[string]bool
	Variants      map[string]bool
	Series        map[string]bool
	Models        map[string]bool
	PhoneModels   map[string]bool
	IPhoneGen     int
}

var (
	brandRes    = make(map[string]*regexp.Regexp, len(brandVocab))
	variantRes  = make(map[string]*regexp.Regexp, len(variantVocab))
	panelRes    = make(map[string]*regexp.Regexp, len(panelVocab))
	colorRes    = make(map[string]*regexp.Regexp, len(colorVocab))
	refurbRes   []*regexp.Regexp
	reInch      = regexp.MustCompile(`(\d{2,3})\s*(?:inches|inch|["”'])`)
	reCM        = regexp.MustCompile(`(\d{2,3})\s*cm\b`)
	reCapacity  = regexp.MustCompile(`(\d+)\s*(gb|tb)\b`)
	reWatt      = regexp.MustCompile(`(\d+)\s*(?:watts|watt|w)\b`)
	reJars      = regexp.MustCompile(`(\d+)\s*jars?\b`)
	rePackOf    = regexp.MustCompile(`(?:pack|set|combo)\s+of\s+(\d+)`)
	rePieces    = regexp.MustCompile(`(\d+)\s*(?:pcs|pieces|piece)\b`)
	reWeight    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(kg|ml|litres|litre|liters|liter|l|g)\b`)
	reBareHD    = regexp.MustCompile(`\bhd\b`)
	reIPhone    = regexp.MustCompile(`iphone\s*(\d{1,2})\s*(pro\s*max|promax|pro|plus|max|mini|se)?`)
	reGalaxyS   = regexp.MustCompile(`\bs(\d{2})\s*(ultra|plus|fe)?\b`)
	reGalaxy    = regexp.MustCompile(`galaxy\s+([a-z]{1,3}\d{1,3})`)
	reNord      = regexp.MustCompile(`nord\s+(ce\s*\d\w*|\d\w*|[a-z]+\d+)`)
	reNumPro    = regexp.MustCompile(`\b(\d{1,2})\s*pro\b`)
	reUnitLike  = regexp.MustCompile(`^\d+(?:\.\d+)?(?:gb|tb|mah|mm|cm|kg|ml|hz|mp|fps|inch|inches|w|k|p|l|g)$`)
	reGenToken  = regexp.MustCompile(`^(?:gen\d+|\d+gen|\d+(?:st|nd|rd|th))$`)
	reHasDigit  = regexp.MustCompile(`\d`)
	reHasLetter = regexp.MustCompile(`[a-z]`)
)

// resolutionGroups map keyword spellings to the canonical resolution token,
// checked in order so "ultra hd" is claimed before a bare "hd".
var resolutionGroups = []struct {
	canonical string
	keywords  []string
}{
	{"4k", []string{"2160p", "ultra hd", "uhd", "4k"}},
	{"fhd", []string{"1080p", "full hd", "fhd"}},
	{"hd", []string{"hd ready", "720p"}},
}

var (
	familyWordRes = make(map[string]*regexp.Regexp, len(brandFamilies))
	resolutionRes = make(map[string]*regexp.Regexp)
)

func init() {
	for _, b := range brandVocab {
		brandRes[b] = regexp.MustCompile(`\b` + regexp.QuoteMeta(b) + `\b`)
	}
	for word := range brandFamilies {
		familyWordRes[word] = regexp.MustCompile(`\b` + word + `\b`)
	}
	for _, group := range resolutionGroups {
		for _, kw := range group.keywords {
			resolutionRes[kw] = regexp.MustCompile(`\b` + strings.ReplaceAll(kw, " ", `\s+`) + `\b`)
		}
	}
	for _, v := range variantVocab {
		variantRes[v] = regexp.MustCompile(`\b` + v + `\b`)
	}
	for _, p := range panelVocab {
		panelRes[p] = regexp.MustCompile(`\b` + p + `\b`)
	}
	for _, c := range colorVocab {
		colorRes[c] = regexp.MustCompile(`\b` + c + `\b`)
	}
	for _, k := range refurbKeywords {
		if strings.ContainsAny(k, " -") {
			refurbRes = append(refurbRes, regexp.MustCompile(regexp.QuoteMeta(k)))
		} else {
			refurbRes = append(refurbRes, regexp.MustCompile(`\b`+k+`\b`))
		}
	}
}

// Extract parses a product title into an IdentifierSet. It is a deterministic,
// case-insensitive, pure function of the title string.
func Extract(title string) *IdentifierSet {
	t := strings.ToLower(title)
	ids := &IdentifierSet{
		Brands:        make(map[string]bool),
		BrandFamilies: make(map[string]bool),
		Resolutions:   make(map[string]bool),
		Panels:        make(map[string]bool),
		Colors:        make(map[string]bool),
		Units:         make(map[string]bool),
		Variants:      make(map[string]bool),
		Series:        make(map[string]bool),
		Models:        make(map[string]bool),
		PhoneModels:   make(map[string]bool),
	}

	for _, b := range brandVocab {
		if brandRes[b].MatchString(t) {
			ids.Brands[b] = true
			if fam, ok := brandFamilies[b]; ok {
				ids.BrandFamilies[fam] = true
			}
		}
	}
	// family-only markers like "galaxy" or "nord" that are not brands themselves
	for word, fam := range brandFamilies {
		if ids.BrandFamilies[fam] {
			continue
		}
		if familyWordRes[word].MatchString(t) {
			ids.BrandFamilies[fam] = true
		}
	}

	for _, re := range refurbRes {
		if re.MatchString(t) {
			ids.Refurbished = true
			break
		}
	}
	for _, phrase := range accessoryPhrases {
		if strings.Contains(t, phrase) {
			ids.Accessory = true
			break
		}
	}

	extractScreenSize(t, ids)
	extractCapacities(t, ids)
	extractResolutions(t, ids)

	for _, p := range panelVocab {
		if panelRes[p].MatchString(t) {
			ids.Panels[p] = true
		}
	}
	if m := reWatt.FindStringSubmatch(t); m != nil {
		ids.Wattage, _ = strconv.Atoi(m[1])
	}
	if m := reJars.FindStringSubmatch(t); m != nil {
		ids.Jars, _ = strconv.Atoi(m[1])
	}
	extractUnits(t, ids)

	for _, c := range colorVocab {
		if colorRes[c].MatchString(t) {
			name := c
			if canon, ok := colorAliases[c]; ok {
				name = canon
			}
			ids.Colors[name] = true
		}
	}

	for _, v := range variantVocab {
		if variantRes[v].MatchString(t) {
			ids.Variants[v] = true
			if v == "promax" {
				ids.Variants["pro"] = true
				ids.Variants["max"] = true
			}
		}
	}
	for _, s := range seriesVocab {
		if strings.Contains(t, s) {
			ids.Series[strings.ReplaceAll(s, " ", "")] = true
		}
	}

	extractModels(t, ids)
	extractPhoneModels(t, ids)
	return ids
}

func extractScreenSize(t string, ids *IdentifierSet) {
	if m := reInch.FindStringSubmatch(t); m != nil {
		ids.ScreenInches, _ = strconv.Atoi(m[1])
		return
	}
	if m := reCM.FindStringSubmatch(t); m != nil {
		cm, _ := strconv.Atoi(m[1])
		if inch, ok := cmToInch[cm]; ok {
			ids.ScreenInches = inch
		} else {
			ids.ScreenInches = int(math.Round(float64(cm) / 2.54))
		}
	}
}

// extractCapacities tokenizes every <N>(gb|tb) occurrence and inspects a
// 12-character window around each match for "ram" vs "rom"/"storage"
// keywords. If no occurrence is explicitly tagged as storage, the single
// largest capacity is assumed to be storage. This is a deliberate
// approximation: titles like "8GB | 128GB" carry no explicit tag and the
// larger number is overwhelmingly the storage size.
func extractCapacities(t string, ids *IdentifierSet) {
	matches := reCapacity.FindAllStringSubmatchIndex(t, -1)
	type capacity struct {
		token string
		scale int // in GB units, TB counted as x1024
		tag   string
	}
	var caps []capacity
	for _, m := range matches {
		num, _ := strconv.Atoi(t[m[2]:m[3]])
		unit := t[m[4]:m[5]]
		scale := num
		if unit == "tb" {
			scale = num * 1024
		}
		caps = append(caps, capacity{
			token: fmt.Sprintf("%d%s", num, unit),
			scale: scale,
			tag:   capacityTag(t, m[0], m[1]),
		})
	}

	largestIf := func(cur string, tag string) string {
		best, bestScale := cur, -1
		for _, c := range caps {
			if c.tag == tag && c.scale > bestScale {
				best, bestScale = c.token, c.scale
			}
		}
		if bestScale < 0 {
			return cur
		}
		return best
	}
	ids.RAM = largestIf("", "ram")
	ids.Storage = largestIf("", "storage")
	if ids.Storage == "" {
		// no explicit storage tag: largest untagged capacity wins
		best, bestScale := "", -1
		for _, c := range caps {
			if c.tag == "" && c.scale > bestScale {
				best, bestScale = c.token, c.scale
			}
		}
		ids.Storage = best
	}
}

// capacityTag classifies one capacity occurrence by the 12-character window
// around it. The window after the number is checked first because unit tags
// almost always trail the value ("8GB RAM"); whichever keyword appears
// earliest there wins. The leading window is a fallback, closest keyword wins.
func capacityTag(t string, start, end int) string {
	after := t[end:min(len(t), end+12)]
	ramIdx := strings.Index(after, "ram")
	romIdx := strings.Index(after, "rom")
	if romIdx < 0 {
		romIdx = strings.Index(after, "storage")
	}
	switch {
	case ramIdx >= 0 && (romIdx < 0 || ramIdx < romIdx):
		return "ram"
	case romIdx >= 0:
		return "storage"
	}
	before := t[max(0, start-12):start]
	ramIdx = strings.LastIndex(before, "ram")
	romIdx = strings.LastIndex(before, "rom")
	if i := strings.LastIndex(before, "storage"); i > romIdx {
		romIdx = i
	}
	switch {
	case ramIdx >= 0 && ramIdx > romIdx:
		return "ram"
	case romIdx >= 0:
		return "storage"
	}
	return ""
}

// extractResolutions canonicalizes resolution keywords. A bare "hd" only
// counts when neither fhd nor 4k was found, so marketing copy like
// "Full HD" is not double-tagged as generic HD.
func extractResolutions(t string, ids *IdentifierSet) {
	for _, group := range resolutionGroups {
		for _, kw := range group.keywords {
			if resolutionRes[kw].MatchString(t) {
				ids.Resolutions[group.canonical] = true
				break
			}
		}
	}
	if !ids.Resolutions["fhd"] && !ids.Resolutions["4k"] && reBareHD.MatchString(t) {
		ids.Resolutions["hd"] = true
	}
}

func extractUnits(t string, ids *IdentifierSet) {
	if m := rePackOf.FindStringSubmatch(t); m != nil {
		ids.Units["pack"+m[1]] = true
	}
	if m := rePieces.FindStringSubmatch(t); m != nil {
		ids.Units[m[1]+"pc"] = true
	}
	for _, m := range reWeight.FindAllStringSubmatch(t, -1) {
		val, unit := m[1], m[2]
		switch unit {
		case "litres", "litre", "liters", "liter":
			unit = "l"
		case "g":
			// "5g"/"4g" network tags and tiny gram counts are noise
			if v, err := strconv.ParseFloat(val, 64); err != nil || v < 50 {
				continue
			}
		}
		ids.Units[val+unit] = true
	}
}

// extractModels captures SKU-style alphanumeric tokens (>= 4 chars, both a
// digit and a letter after punctuation stripping), excluding unit-like and
// stoplisted tokens. An exact model number match is the strongest pairing
// signal the scorer has.
func extractModels(t string, ids *IdentifierSet) {
	for _, raw := range strings.FieldsFunc(t, func(r rune) bool { return r == ' ' || r == '/' || r == '\t' }) {
		tok := strings.Trim(raw, `()[]{},;:.!+|"'-`)
		if len(tok) < 4 || modelStoplist[tok] {
			continue
		}
		if !reHasDigit.MatchString(tok) || !reHasLetter.MatchString(tok) {
			continue
		}
		if reUnitLike.MatchString(tok) || reGenToken.MatchString(tok) {
			continue
		}
		ids.Models[tok] = true
	}
}

func extractPhoneModels(t string, ids *IdentifierSet) {
	if m := reIPhone.FindStringSubmatch(t); m != nil {
		gen, _ := strconv.Atoi(m[1])
		ids.IPhoneGen = gen
		tok := "iphone" + m[1]
		if m[2] != "" {
			tok += strings.ReplaceAll(m[2], " ", "")
		}
		ids.PhoneModels[tok] = true
	}
	if m := reGalaxyS.FindStringSubmatch(t); m != nil {
		tok := "s" + m[1]
		if m[2] != "" {
			tok += m[2]
		}
		ids.PhoneModels[tok] = true
	}
	if m := reGalaxy.FindStringSubmatch(t); m != nil {
		ids.PhoneModels["galaxy"+m[1]] = true
	}
	if m := reNord.FindStringSubmatch(t); m != nil {
		ids.PhoneModels["nord"+strings.ReplaceAll(m[1], " ", "")] = true
	}
	if m := reNumPro.FindStringSubmatch(t); m != nil {
		ids.PhoneModels[m[1]+"pro"] = true
	}
}

// Tokens materializes the flat normalized token set used for identifier
// overlap counts and Jaccard similarity. Token spellings follow the
// namespace-prefix convention (storage_128gb, variant_pro, ...).
func (s *IdentifierSet) Tokens() map[string]bool {
	out := make(map[string]bool)
	for b := range s.Brands {
		out[b] = true
	}
	for f := range s.BrandFamilies {
		out["brandfamily_"+f] = true
	}
	if s.Refurbished {
		out["flag_refurbished"] = true
	} else {
		out["flag_new"] = true
	}
	if s.Accessory {
		out["flag_accessory"] = true
	} else {
		out["flag_main_product"] = true
	}
	if s.ScreenInches > 0 {
		out[strconv.Itoa(s.ScreenInches)+"inch"] = true
	}
	if s.Storage != "" {
		out["storage_"+s.Storage] = true
	}
	if s.RAM != "" {
		out["ram_"+s.RAM] = true
	}
	for r := range s.Resolutions {
		out[r] = true
	}
	for p := range s.Panels {
		out[p] = true
	}
	if s.Wattage > 0 {
		out["watt_"+strconv.Itoa(s.Wattage)] = true
	}
	if s.Jars > 0 {
		out["jars_"+strconv.Itoa(s.Jars)] = true
	}
	for c := range s.Colors {
		out["color_"+c] = true
	}
	for u := range s.Units {
		out["unit_"+u] = true
	}
	for v := range s.Variants {
		out[v] = true
		out["variant_"+v] = true
	}
	for sr := range s.Series {
		out["series_"+sr] = true
	}
	for m := range s.Models {
		out["model_"+m] = true
	}
	for p := range s.PhoneModels {
		out[p] = true
	}
	if s.IPhoneGen > 0 {
		out["iphone_gen_"+strconv.Itoa(s.IPhoneGen)] = true
	}
	return out
}
