package match

import (
	"testing"

	"github.com/shopsync/shopsync/internal/identify"
)

func TestVeto(t *testing.T) {
	tests := []struct {
		name     string
		titleA   string
		titleB   string
		wantVeto bool
		wantRule string
	}{
		{
			name:     "identical phones pass",
			titleA:   "Apple iPhone 15 (128 GB) - Blue",
			titleB:   "Apple iPhone 15 128GB Blue",
			wantVeto: false,
		},
		{
			name:     "different brands",
			titleA:   "Apple iPhone 15 128GB",
			titleB:   "Samsung Galaxy S23 128GB",
			wantVeto: true,
			wantRule: "brand_mismatch",
		},
		{
			name:     "brand family bridges alias",
			titleA:   "Mi Smart TV 43 inch",
			titleB:   "Xiaomi Smart TV 43 inch",
			wantVeto: false,
		},
		{
			name:     "different storage",
			titleA:   "Samsung Galaxy S23 128GB Phantom Black",
			titleB:   "Samsung Galaxy S23 256GB Phantom Black",
			wantVeto: true,
			wantRule: "storage_mismatch",
		},
		{
			name:     "accessory vs main product",
			titleA:   "iPhone 15 Back Cover Case",
			titleB:   "Apple iPhone 15 128GB",
			wantVeto: true,
			wantRule: "accessory_mismatch",
		},
		{
			name:     "refurbished vs new",
			titleA:   "Renewed Apple iPhone 13 128GB",
			titleB:   "Apple iPhone 13 128GB",
			wantVeto: true,
			wantRule: "condition_mismatch",
		},
		{
			name:     "tv screen sizes differ",
			titleA:   "Samsung 43 inch Crystal 4K Smart TV",
			titleB:   "Samsung 55 inch Crystal 4K Smart TV",
			wantVeto: true,
			wantRule: "screen_size_mismatch",
		},
		{
			name:     "tv cm and inch reconcile",
			titleA:   "Samsung 108 cm (43 inches) Crystal 4K TV",
			titleB:   "Samsung 43 inch Crystal 4K TV",
			wantVeto: false,
		},
		{
			name:     "tv resolutions differ",
			titleA:   "LG 43 inch Full HD Smart TV",
			titleB:   "LG 43 inch 4K Ultra HD Smart TV",
			wantVeto: true,
			wantRule: "resolution_mismatch",
		},
		{
			name:     "mixer wattage differs",
			titleA:   "Philips Mixer Grinder 500W 3 Jars",
			titleB:   "Philips Mixer Grinder 750W 3 Jars",
			wantVeto: true,
			wantRule: "wattage_mismatch",
		},
		{
			name:     "jar counts differ",
			titleA:   "Bajaj Mixer Grinder 500W 3 Jars",
			titleB:   "Bajaj Mixer Grinder 500W 4 Jars",
			wantVeto: true,
			wantRule: "jar_count_mismatch",
		},
		{
			name:     "pack sizes differ",
			titleA:   "Milton Water Bottle 1L Pack of 2",
			titleB:   "Milton Water Bottle 1L Pack of 4",
			wantVeto: true,
			wantRule: "unit_mismatch",
		},
		{
			name:     "pro vs pro max",
			titleA:   "Apple iPhone 15 Pro 256GB",
			titleB:   "Apple iPhone 15 Pro Max 256GB",
			wantVeto: false,
		},
		{
			name:     "pro vs bare max",
			titleA:   "OnePlus 12 Pro 256GB",
			titleB:   "OnePlus 12 Max 256GB",
			wantVeto: true,
			wantRule: "variant_mismatch",
		},
		{
			name:     "iphone generations differ",
			titleA:   "Apple iPhone 14 128GB",
			titleB:   "Apple iPhone 15 128GB",
			wantVeto: true,
			wantRule: "iphone_generation_mismatch",
		},
		{
			name:     "one side missing storage is not a conflict",
			titleA:   "Samsung Galaxy S23 5G",
			titleB:   "Samsung Galaxy S23 5G 256GB",
			wantVeto: false,
		},
		{
			name:     "laptop series differ",
			titleA:   "Asus ROG Strix Gaming Laptop",
			titleB:   "Asus TUF Gaming Laptop",
			wantVeto: true,
			wantRule: "series_mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := identify.Extract(tt.titleA)
			b := identify.Extract(tt.titleB)
			vetoed, rule := Veto(a, b)
			if vetoed != tt.wantVeto {
				t.Fatalf("Veto(%q, %q) = %v (%s), want %v",
					tt.titleA, tt.titleB, vetoed, rule, tt.wantVeto)
			}
			if tt.wantVeto && rule != tt.wantRule {
				t.Errorf("rule = %q, want %q", rule, tt.wantRule)
			}
		})
	}
}

func TestVetoOrder(t *testing.T) {
	// Accessory disagreement must win even when a brand conflict also exists.
	a := identify.Extract("Samsung Galaxy S23 Back Cover")
	b := identify.Extract("Apple iPhone 15 128GB")
	vetoed, rule := Veto(a, b)
	if !vetoed || rule != "accessory_mismatch" {
		t.Fatalf("Veto = %v (%s), want accessory_mismatch", vetoed, rule)
	}
}

func TestVetoSymmetricOnEmptySets(t *testing.T) {
	empty := identify.Extract("generic product")
	full := identify.Extract("Samsung 43 inch 4K TV 256GB Pro")
	if vetoed, rule := Veto(empty, full); vetoed {
		t.Errorf("empty vs full vetoed by %s, want pass", rule)
	}
	if vetoed, rule := Veto(full, empty); vetoed {
		t.Errorf("full vs empty vetoed by %s, want pass", rule)
	}
}
