package services

import (
	"sort"
	"strings"
)

// ProductMatch is an autofill suggestion parsed from a free-text item name.
type ProductMatch struct {
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	Category   string  `json:"category"`
	Emoji      string  `json:"emoji"`
	Confidence float64 `json:"confidence"` // 0-1
}

type brandEntry struct {
	category string
	emoji    string
	aliases  []string
}

// brandDB maps known brands to their category and emoji for smart
// auto-fill. Aliases are lowercase substrings that identify the brand in a
// typed item name.
var brandDB = map[string]brandEntry{
	// Sneakers & shoes
	"Nike":        {"Sneakers", "👟", []string{"nike"}},
	"Jordan":      {"Sneakers", "👟", []string{"jordan", "air jordan"}},
	"Adidas":      {"Sneakers", "👟", []string{"adidas", "yeezy"}},
	"New Balance": {"Sneakers", "👟", []string{"new balance"}},
	"Converse":    {"Sneakers", "👟", []string{"converse", "chuck taylor"}},
	"Vans":        {"Sneakers", "👟", []string{"vans"}},
	"Hoka":        {"Sneakers", "👟", []string{"hoka"}},

	// Luxury fashion
	"Louis Vuitton": {"Bags", "👜", []string{"louis vuitton"}},
	"Gucci":         {"Bags", "👜", []string{"gucci"}},
	"Chanel":        {"Bags", "👜", []string{"chanel"}},
	"Hermes":        {"Bags", "👜", []string{"hermes", "hermès", "birkin"}},
	"Prada":         {"Bags", "👜", []string{"prada"}},
	"Coach":         {"Bags", "👜", []string{"coach"}},

	// Streetwear
	"Supreme":     {"Clothing", "👕", []string{"supreme"}},
	"Bape":        {"Clothing", "👕", []string{"bape", "a bathing ape"}},
	"Off-White":   {"Clothing", "👕", []string{"off-white", "off white"}},
	"Fear of God": {"Clothing", "👕", []string{"fear of god", "essentials"}},

	// Watches
	"Rolex":           {"Watches", "⌚", []string{"rolex", "submariner", "daytona", "datejust"}},
	"Omega":           {"Watches", "⌚", []string{"omega", "speedmaster", "seamaster"}},
	"Patek Philippe":  {"Watches", "⌚", []string{"patek", "patek philippe"}},
	"Audemars Piguet": {"Watches", "⌚", []string{"audemars piguet", "royal oak"}},
	"Cartier":         {"Watches", "⌚", []string{"cartier", "santos"}},
	"Seiko":           {"Watches", "⌚", []string{"seiko"}},
	"Casio":           {"Watches", "⌚", []string{"casio", "g-shock"}},
	"Tudor":           {"Watches", "⌚", []string{"tudor", "black bay"}},

	// Electronics
	"Apple":     {"Electronics", "📱", []string{"apple", "iphone", "ipad", "macbook", "airpods", "apple watch"}},
	"Samsung":   {"Electronics", "📱", []string{"samsung", "galaxy"}},
	"Sony":      {"Electronics", "📱", []string{"sony", "playstation", "ps5", "ps4"}},
	"Microsoft": {"Electronics", "📱", []string{"microsoft", "xbox", "surface"}},
	"Nintendo":  {"Gaming", "🎮", []string{"nintendo", "switch"}},
	"Dyson":     {"Electronics", "📱", []string{"dyson"}},
	"Canon":     {"Electronics", "📷", []string{"canon"}},

	// Home
	"Herman Miller": {"Home", "🪑", []string{"herman miller", "aeron"}},
	"Le Creuset":    {"Home", "🍳", []string{"le creuset"}},
	"Vitamix":       {"Home", "🍳", []string{"vitamix"}},

	// Collectibles & cards
	"Pokemon": {"Trading Cards", "🃏", []string{"pokemon", "charizard"}},
	"Topps":   {"Trading Cards", "🃏", []string{"topps"}},
	"Panini":  {"Trading Cards", "🃏", []string{"panini", "prizm"}},
	"Funko":   {"Collectibles", "🧸", []string{"funko", "pop vinyl"}},
	"LEGO":    {"LEGO", "🧱", []string{"lego", "minifig"}},

	// Music
	"Fender": {"Music", "🎸", []string{"fender", "stratocaster", "telecaster"}},
	"Gibson": {"Music", "🎸", []string{"gibson", "les paul"}},

	// Tools
	"DeWalt":    {"Tools", "🔧", []string{"dewalt"}},
	"Milwaukee": {"Tools", "🔧", []string{"milwaukee"}},
}

// MatchProduct parses a typed item name against the brand table and returns
// the best autofill suggestion, or nil when nothing matches. Longer alias
// matches win; confidence scales with how much of the query the alias
// explains.
func MatchProduct(query string) *ProductMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	bestBrand := ""
	bestAlias := ""
	for brand, entry := range brandDB {
		for _, alias := range entry.aliases {
			if strings.Contains(q, alias) && len(alias) > len(bestAlias) {
				bestBrand = brand
				bestAlias = alias
			}
		}
	}
	if bestBrand == "" {
		return nil
	}

	entry := brandDB[bestBrand]
	model := strings.TrimSpace(strings.Replace(q, bestAlias, "", 1))
	confidence := float64(len(bestAlias)) / float64(len(q))
	if confidence > 1 {
		confidence = 1
	}

	return &ProductMatch{
		Brand:      bestBrand,
		Model:      titleCase(model),
		Category:   entry.category,
		Emoji:      entry.emoji,
		Confidence: confidence,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// KnownBrands returns every brand in the table, sorted.
func KnownBrands() []string {
	brands := make([]string, 0, len(brandDB))
	for b := range brandDB {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands
}
