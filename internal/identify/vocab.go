package identify

// Brand vocabulary matched at word boundaries. Multiple brands may co-occur
// in one title (e.g. "Apple iPhone"); all matches are kept.
var brandVocab = []string{
	// phones
	"apple", "iphone", "samsung", "oneplus", "xiaomi", "redmi", "mi", "realme",
	"oppo", "vivo", "poco", "iqoo", "motorola", "moto", "google", "pixel",
	"nothing", "infinix", "tecno", "honor", "nokia", "lava",
	// TVs
	"lg", "sony", "toshiba", "tcl", "panasonic", "philips", "haier",
	"hisense", "vu", "acer", "acerpure", "kenstar", "onida", "iffalcon",
	"sansui", "thomson", "kodak", "bpl",
	// laptops
	"hp", "dell", "lenovo", "asus", "msi", "macbook", "thinkpad", "ideapad",
	// audio
	"boat", "jbl", "bose", "sennheiser", "noise", "marshall", "skullcandy",
	"zebronics", "boult",
	// appliances
	"prestige", "bajaj", "usha", "havells", "crompton", "butterfly", "pigeon",
	"wonderchef", "kent", "eureka", "dyson", "whirlpool", "godrej", "voltas",
	"daikin", "ifb", "bosch", "faber", "elica",
}

// brandFamilies maps a brand token to its parent family so family-level
// fallback matching works when exact brand tokens disagree ("Mi" on one
// side, "Xiaomi" on the other).
var brandFamilies = map[string]string{
	"apple":    "apple",
	"iphone":   "apple",
	"macbook":  "apple",
	"ipad":     "apple",
	"airpods":  "apple",
	"xiaomi":   "xiaomi",
	"mi":       "xiaomi",
	"redmi":    "xiaomi",
	"poco":     "xiaomi",
	"samsung":  "samsung",
	"galaxy":   "samsung",
	"oneplus":  "oneplus",
	"nord":     "oneplus",
	"google":   "google",
	"pixel":    "google",
	"motorola": "motorola",
	"moto":     "motorola",
	"lenovo":   "lenovo",
	"thinkpad": "lenovo",
	"ideapad":  "lenovo",
}

// refurbKeywords mark a listing as refurbished/used rather than new.
var refurbKeywords = []string{
	"renewed", "refurbished", "unboxed", "used", "pre-owned", "preowned",
	"second hand", "secondhand",
}

// accessoryPhrases mark a listing as an accessory rather than a main product.
var accessoryPhrases = []string{
	"compatible", "case for", "cover for", "adapter for", "charger for",
	"cable for", "pouch for", "strap for", "skin for", "stand for",
	"screen protector", "tempered glass", "back cover", "screen guard",
}

// variantVocab produces both a bare token and a variant_ token. The strict
// variant set used by the veto engine is a subset (see match package).
var variantVocab = []string{
	"promax", "pro", "max", "plus", "ultra", "mini", "air", "lite", "fe", "v2",
}

// seriesVocab covers brand sub-line names; spaces are removed in the token.
var seriesVocab = []string{
	"fire tv", "google tv", "android tv", "webos", "tizen",
	"a series", "x series", "f series", "g series",
	"thinkpad", "ideapad", "macbook air", "macbook pro",
	"rog", "legion", "tuf", "zenbook", "vivobook",
	"pavilion", "inspiron", "aspire", "predator", "nitro", "omen", "victus",
}

// panelVocab are display panel technologies, matched at word boundaries so
// "led" does not fire inside "oled" or "qled".
var panelVocab = []string{"qled", "oled", "qned", "nanocell", "amoled", "led", "lcd"}

// colorVocab for the soft color-disagreement penalty.
var colorVocab = []string{
	"black", "white", "blue", "red", "green", "yellow", "purple", "pink",
	"gold", "silver", "grey", "gray", "graphite", "midnight", "starlight",
	"titanium", "cream", "orange", "lavender", "mint", "beige", "bronze",
	"copper", "navy", "teal", "cyan",
}

// colorAliases folds spelling variants into one canonical color name.
var colorAliases = map[string]string{"gray": "grey"}

// cmToInch maps common TV sizes in centimetres to their conventional inch
// class. Values outside the table fall back to round(cm/2.54).
var cmToInch = map[int]int{
	80: 32, 108: 43, 109: 43, 126: 50, 138: 55, 139: 55, 164: 65, 189: 75,
}

// modelStoplist rejects alphanumeric tokens that look like model numbers but
// are units, generations, or marketing fragments.
var modelStoplist = map[string]bool{
	"pack": true, "inch": true, "gen1": true, "gen2": true, "gen3": true,
	"type1": true, "typec": true, "usb2": true, "usb3": true, "wifi6": true,
	"1year": true, "2year": true, "3year": true,
}

// noiseWords are stripped by Normalize before lexical bag-of-words scoring.
// They never affect identifier extraction.
var noiseWords = map[string]bool{
	"with": true, "and": true, "the": true, "for": true, "new": true,
	"latest": true, "mobile": true, "phone": true, "smartphone": true,
	"works": true, "camera": true, "control": true, "chip": true,
	"boost": true, "battery": true, "life": true, "display": true,
	"5g": true, "4g": true, "lte": true, "india": true, "buy": true,
	"online": true, "warranty": true, "official": true, "sale": true,
	"offer": true, "best": true, "price": true, "free": true,
	"delivery": true, "genuine": true, "only": true,
}
