package identify

import "testing"

func TestExtract_Brands(t *testing.T) {
	ids := Extract("Apple iPhone 15 128GB Blue")
	if !ids.Brands["apple"] || !ids.Brands["iphone"] {
		t.Errorf("expected apple and iphone brands, got %v", ids.Brands)
	}
	if !ids.BrandFamilies["apple"] {
		t.Errorf("iphone should imply brandfamily apple, got %v", ids.BrandFamilies)
	}
}

func TestExtract_BrandFamilyBridgesSpellings(t *testing.T) {
	a := Extract("Mi 5X 43 inch Full HD Smart TV")
	b := Extract("Xiaomi Smart TV 43 inch FHD")
	if !a.BrandFamilies["xiaomi"] || !b.BrandFamilies["xiaomi"] {
		t.Errorf("Mi and Xiaomi should share the xiaomi family: %v vs %v", a.BrandFamilies, b.BrandFamilies)
	}
}

func TestExtract_GalaxyImpliesSamsungFamily(t *testing.T) {
	ids := Extract("Galaxy M14 5G 128GB")
	if !ids.BrandFamilies["samsung"] {
		t.Errorf("galaxy should imply samsung family, got %v", ids.BrandFamilies)
	}
}

func TestExtract_ConditionFlag(t *testing.T) {
	tests := []struct {
		title  string
		refurb bool
	}{
		{"Apple iPhone 13 (Renewed)", true},
		{"Samsung Galaxy S21 Refurbished Excellent", true},
		{"OnePlus 9 Pro Unboxed Like New", true},
		{"Apple iPhone 15 128GB", false},
		{"Unused stock clearance phone", false}, // "used" inside "unused" must not fire
	}
	for _, tt := range tests {
		if got := Extract(tt.title).Refurbished; got != tt.refurb {
			t.Errorf("Extract(%q).Refurbished = %v, want %v", tt.title, got, tt.refurb)
		}
	}
}

func TestExtract_AccessoryFlag(t *testing.T) {
	tests := []struct {
		title     string
		accessory bool
	}{
		{"Spigen Case for iPhone 15", true},
		{"Tempered Glass Compatible with Galaxy S23", true},
		{"USB-C Adapter for MacBook Pro", true},
		{"Apple iPhone 15 128GB", false},
	}
	for _, tt := range tests {
		if got := Extract(tt.title).Accessory; got != tt.accessory {
			t.Errorf("Extract(%q).Accessory = %v, want %v", tt.title, got, tt.accessory)
		}
	}
}

func TestExtract_ScreenSize(t *testing.T) {
	tests := []struct {
		title string
		want  int
	}{
		{"Samsung 55 inch Crystal 4K TV", 55},
		{"LG 108 cm (43 inch) Smart TV", 43},
		{"Mi 80 cm HD Ready TV", 32},   // cm table lookup
		{"TCL 139 cm QLED TV", 55},     // cm table lookup
		{"Haier 100 cm LED TV", 39},    // round(100/2.54)
		{"boAt Airdopes 141 Earbuds", 0},
	}
	for _, tt := range tests {
		if got := Extract(tt.title).ScreenInches; got != tt.want {
			t.Errorf("Extract(%q).ScreenInches = %d, want %d", tt.title, got, tt.want)
		}
	}
}

func TestExtract_StorageAndRAM(t *testing.T) {
	tests := []struct {
		title   string
		storage string
		ram     string
	}{
		{"Samsung Galaxy M14 (8GB RAM, 128GB ROM)", "128gb", "8gb"},
		{"Redmi Note 12 128GB Storage 6GB RAM", "128gb", "6gb"},
		// no explicit storage tag: largest capacity is assumed storage
		{"OnePlus 11 8GB 256GB", "256gb", ""},
		{"Seagate 1TB External Drive 32GB bonus card", "1tb", ""},
		{"boAt Airdopes 141", "", ""},
	}
	for _, tt := range tests {
		ids := Extract(tt.title)
		if ids.Storage != tt.storage || ids.RAM != tt.ram {
			t.Errorf("Extract(%q) storage=%q ram=%q, want %q/%q",
				tt.title, ids.Storage, ids.RAM, tt.storage, tt.ram)
		}
	}
}

func TestExtract_Resolution(t *testing.T) {
	tests := []struct {
		title string
		want  map[string]bool
	}{
		{"Samsung 55 inch Ultra HD Smart TV", map[string]bool{"4k": true}},
		{"LG 43 inch Full HD TV", map[string]bool{"fhd": true}},
		{"Mi 32 inch HD Ready TV", map[string]bool{"hd": true}},
		// bare "HD" must not double-tag when Full HD is present
		{"Sony Full HD 1080p TV", map[string]bool{"fhd": true}},
		{"Toshiba 4K UHD TV", map[string]bool{"4k": true}},
	}
	for _, tt := range tests {
		got := Extract(tt.title).Resolutions
		if len(got) != len(tt.want) {
			t.Errorf("Extract(%q).Resolutions = %v, want %v", tt.title, got, tt.want)
			continue
		}
		for k := range tt.want {
			if !got[k] {
				t.Errorf("Extract(%q).Resolutions missing %q: %v", tt.title, k, got)
			}
		}
	}
}

func TestExtract_PanelTokens(t *testing.T) {
	ids := Extract("Samsung 55 inch QLED TV")
	if !ids.Panels["qled"] {
		t.Errorf("expected qled panel, got %v", ids.Panels)
	}
	if ids.Panels["led"] {
		t.Error("bare led must not fire inside qled")
	}
}

func TestExtract_ApplianceTokens(t *testing.T) {
	ids := Extract("Prestige Iris 750 Watt Mixer Grinder with 3 Jars")
	if ids.Wattage != 750 {
		t.Errorf("Wattage = %d, want 750", ids.Wattage)
	}
	if ids.Jars != 3 {
		t.Errorf("Jars = %d, want 3", ids.Jars)
	}
}

func TestExtract_Units(t *testing.T) {
	if ids := Extract("Tata Salt Pack of 2"); !ids.Units["pack2"] {
		t.Errorf("expected pack2 unit, got %v", ids.Units)
	}
	if ids := Extract("Surf Excel 500g Detergent"); !ids.Units["500g"] {
		t.Errorf("expected 500g unit, got %v", ids.Units)
	}
	// 5G network tag must not become a gram unit
	if ids := Extract("Samsung Galaxy M14 5G"); len(ids.Units) != 0 {
		t.Errorf("5g should not produce a unit token, got %v", ids.Units)
	}
}

func TestExtract_Variants(t *testing.T) {
	ids := Extract("Apple iPhone 15 Pro Max 256GB")
	for _, v := range []string{"pro", "max"} {
		if !ids.Variants[v] {
			t.Errorf("expected variant %q, got %v", v, ids.Variants)
		}
	}
	// joined spelling implies both parts
	ids = Extract("iPhone 14 ProMax 128GB")
	if !ids.Variants["pro"] || !ids.Variants["max"] {
		t.Errorf("promax should imply pro and max, got %v", ids.Variants)
	}
}

func TestExtract_Series(t *testing.T) {
	if ids := Extract("Amazon Fire TV Stick 4K"); !ids.Series["firetv"] {
		t.Errorf("expected firetv series, got %v", ids.Series)
	}
	if ids := Extract("Lenovo Legion 5 Gaming Laptop"); !ids.Series["legion"] {
		t.Errorf("expected legion series, got %v", ids.Series)
	}
}

func TestExtract_ModelNumbers(t *testing.T) {
	ids := Extract("Sony Bravia KD-55X74L 55 inch 4K TV")
	if !ids.Models["kd-55x74l"] && !ids.Models["kd55x74l"] {
		t.Errorf("expected bravia model token, got %v", ids.Models)
	}
	// unit-like tokens must not be mistaken for model numbers
	ids = Extract("Samsung 128GB 5000mAh 48MP phone")
	if len(ids.Models) != 0 {
		t.Errorf("unit-like tokens leaked into models: %v", ids.Models)
	}
}

func TestExtract_PhoneModels(t *testing.T) {
	ids := Extract("Apple iPhone 15 Pro 128GB")
	if ids.IPhoneGen != 15 {
		t.Errorf("IPhoneGen = %d, want 15", ids.IPhoneGen)
	}
	if !ids.PhoneModels["iphone15pro"] {
		t.Errorf("expected iphone15pro token, got %v", ids.PhoneModels)
	}
	ids = Extract("Samsung Galaxy S23 Ultra 256GB")
	if !ids.PhoneModels["s23ultra"] {
		t.Errorf("expected s23ultra token, got %v", ids.PhoneModels)
	}
}

func TestExtract_Colors(t *testing.T) {
	ids := Extract("Apple iPhone 15 128GB Blue")
	if !ids.Colors["blue"] {
		t.Errorf("expected blue, got %v", ids.Colors)
	}
	// gray folds into grey
	ids = Extract("OnePlus Nord CE 3 Gray")
	if !ids.Colors["grey"] {
		t.Errorf("gray should canonicalize to grey, got %v", ids.Colors)
	}
}

func TestTokens_NamespaceConvention(t *testing.T) {
	tokens := Extract("Apple iPhone 15 Pro 128GB Blue").Tokens()
	for _, want := range []string{
		"apple", "iphone", "brandfamily_apple", "flag_new", "flag_main_product",
		"storage_128gb", "color_blue", "pro", "variant_pro", "iphone_gen_15",
	} {
		if !tokens[want] {
			t.Errorf("Tokens() missing %q: %v", want, tokens)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	title := "Samsung Galaxy S23 Ultra 256GB Green"
	a := Extract(title).Tokens()
	b := Extract(title).Tokens()
	if len(a) != len(b) {
		t.Fatalf("non-deterministic token count: %d vs %d", len(a), len(b))
	}
	for k := range a {
		if !b[k] {
			t.Errorf("token %q missing on re-extract", k)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Apple iPhone 15 (128 GB) - Blue", "apple iphone 15 128gb blue"},
		{"Samsung TV with Warranty for India", "samsung tv"},
		{"boAt Airdopes 141, 5G & Online", "boat airdopes 141"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWordSet(t *testing.T) {
	set := WordSet("apple iphone 15 128gb")
	if len(set) != 4 || !set["128gb"] {
		t.Errorf("unexpected word set %v", set)
	}
}
