package match

import "github.com/shopsync/shopsync/internal/identify"

// vetoRule is one hard-disqualification check. A true result rejects the
// pair outright regardless of similarity score. Rules only fire on
// disagreement: when either side lacks the relevant identifier category,
// absence of information is never itself a conflict.
type vetoRule struct {
	name  string
	fires func(a, b *identify.IdentifierSet) bool
}

// vetoRules are applied in order and short-circuit on the first hit.
var vetoRules = []vetoRule{
	{"accessory_mismatch", func(a, b *identify.IdentifierSet) bool {
		return a.Accessory != b.Accessory
	}},
	{"condition_mismatch", func(a, b *identify.IdentifierSet) bool {
		return a.Refurbished != b.Refurbished
	}},
	{"brand_mismatch", func(a, b *identify.IdentifierSet) bool {
		// Exact brands disjoint is forgivable ("Mi" vs "Xiaomi") as long as
		// the brand families still intersect.
		return len(a.Brands) > 0 && len(b.Brands) > 0 &&
			disjoint(a.Brands, b.Brands) &&
			disjoint(a.BrandFamilies, b.BrandFamilies)
	}},
	{"storage_mismatch", func(a, b *identify.IdentifierSet) bool {
		return a.Storage != "" && b.Storage != "" && a.Storage != b.Storage
	}},
	{"unit_mismatch", func(a, b *identify.IdentifierSet) bool {
		// Pack and quantity tokens must agree exactly: a "pack of 2" sharing
		// a bottle volume with a "pack of 4" is still a different product.
		return len(a.Units) > 0 && len(b.Units) > 0 && !setsEqual(a.Units, b.Units)
	}},
	{"screen_size_mismatch", func(a, b *identify.IdentifierSet) bool {
		return isTV(a, b) && a.ScreenInches > 0 && b.ScreenInches > 0 &&
			a.ScreenInches != b.ScreenInches
	}},
	{"resolution_mismatch", func(a, b *identify.IdentifierSet) bool {
		return isTV(a, b) && len(a.Resolutions) > 0 && len(b.Resolutions) > 0 &&
			disjoint(a.Resolutions, b.Resolutions)
	}},
	{"wattage_mismatch", func(a, b *identify.IdentifierSet) bool {
		return isAppliance(a, b) && a.Wattage > 0 && b.Wattage > 0 && a.Wattage != b.Wattage
	}},
	{"jar_count_mismatch", func(a, b *identify.IdentifierSet) bool {
		return isAppliance(a, b) && a.Jars > 0 && b.Jars > 0 && a.Jars != b.Jars
	}},
	{"series_mismatch", func(a, b *identify.IdentifierSet) bool {
		return len(a.Series) > 0 && len(b.Series) > 0 && !setsEqual(a.Series, b.Series)
	}},
	{"variant_mismatch", func(a, b *identify.IdentifierSet) bool {
		av, bv := strictVariants(a), strictVariants(b)
		return len(av) > 0 && len(bv) > 0 && disjoint(av, bv)
	}},
	{"iphone_generation_mismatch", func(a, b *identify.IdentifierSet) bool {
		return a.IPhoneGen > 0 && b.IPhoneGen > 0 && a.IPhoneGen != b.IPhoneGen
	}},
}

// strictVariantSet is the subset of variant tokens that must overlap when
// both sides carry any: a product tagged "Pro" must not pair with one tagged
// only "Max".
var strictVariantSet = map[string]bool{
	"pro": true, "plus": true, "max": true, "ultra": true,
	"mini": true, "air": true, "lite": true, "fe": true,
}

// Veto reports whether the pair is disqualified and by which rule.
func Veto(a, b *identify.IdentifierSet) (bool, string) {
	for _, rule := range vetoRules {
		if rule.fires(a, b) {
			return true, rule.name
		}
	}
	return false, ""
}

// isTV infers the TV category: either side carries a screen size or a
// resolution token.
func isTV(a, b *identify.IdentifierSet) bool {
	return a.ScreenInches > 0 || b.ScreenInches > 0 ||
		len(a.Resolutions) > 0 || len(b.Resolutions) > 0
}

// isAppliance infers the kitchen-appliance category from wattage/jar tokens.
func isAppliance(a, b *identify.IdentifierSet) bool {
	return a.Wattage > 0 || b.Wattage > 0 || a.Jars > 0 || b.Jars > 0
}

func strictVariants(s *identify.IdentifierSet) map[string]bool {
	out := make(map[string]bool)
	for v := range s.Variants {
		if strictVariantSet[v] {
			out[v] = true
		}
	}
	return out
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func disjoint(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return false
		}
	}
	return true
}

func intersects(a, b map[string]bool) bool {
	return !disjoint(a, b)
}

func overlapCount(a, b map[string]bool) int {
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}
