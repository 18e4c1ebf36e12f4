package services

import (
	"net/url"
	"sort"
	"strings"

	"github.com/praperty/photo2value/internal/models"
)

type marketplaceDef struct {
	urlPattern string // %s is the escaped query
	desc       string
	categories []string // nil = all categories
}

// marketplaceDB holds every marketplace the research screen can link out
// to, with the categories each one is relevant for.
var marketplaceDB = map[string]marketplaceDef{
	"eBay Sold":         {"https://www.ebay.com/sch/i.html?_nkw=%s&LH_Sold=1&LH_Complete=1", "Actual sold prices", nil},
	"eBay Active":       {"https://www.ebay.com/sch/i.html?_nkw=%s", "Current listings", nil},
	"Amazon":            {"https://www.amazon.com/s?k=%s", "New & used prices", nil},
	"Google Shopping":   {"https://www.google.com/search?q=%s+price&tbm=shop", "Compare across stores", nil},
	"Facebook":          {"https://www.facebook.com/marketplace/search/?query=%s", "Local deals", nil},
	"Mercari":           {"https://www.mercari.com/search/?keyword=%s", "General marketplace", []string{"Fashion", "Clothing", "Electronics", "Home", "Toys", "Sneakers", "Collectibles"}},
	"Poshmark":          {"https://poshmark.com/search?query=%s&type=listings&src=dir", "Fashion & accessories", []string{"Fashion", "Clothing", "Bags", "Watches"}},
	"StockX":            {"https://stockx.com/search?s=%s", "Sneakers, streetwear & collectibles", []string{"Sneakers", "Fashion", "Clothing", "Collectibles", "Trading Cards", "Electronics"}},
	"Grailed":           {"https://www.grailed.com/shop?query=%s", "Men's fashion & streetwear", []string{"Fashion", "Clothing"}},
	"The RealReal":      {"https://www.therealreal.com/search?q=%s", "Luxury consignment", []string{"Fashion", "Bags", "Watches", "Art"}},
	"Chrono24":          {"https://www.chrono24.com/search/index.htm?query=%s", "Luxury watch marketplace", []string{"Watches"}},
	"TCGPlayer":         {"https://www.tcgplayer.com/search/all/product?q=%s", "Trading card marketplace", []string{"Trading Cards", "Collectibles"}},
	"Discogs":           {"https://www.discogs.com/search/?q=%s&type=all", "Vinyl & music marketplace", []string{"Vinyl & Music", "Music", "Collectibles"}},
	"BrickLink":         {"https://www.bricklink.com/v2/search.page?q=%s", "LEGO parts & sets", []string{"LEGO", "Toys"}},
	"Whatnot":           {"https://www.whatnot.com/search?q=%s", "Live auction collectibles", []string{"Collectibles", "Trading Cards", "Toys", "Fashion"}},
	"Heritage Auctions": {"https://www.ha.com/search/searchresults.s?N=0&Ntt=%s", "Coins, stamps & fine art", []string{"Coins & Stamps", "Art", "Collectibles"}},
	"Craigslist":        {"https://www.craigslist.org/search/sss?query=%s", "Local classifieds", []string{"Home", "Automotive", "Electronics", "Tools"}},
}

// categoryKeywords infers categories from a bare query when the caller does
// not supply one.
var categoryKeywords = map[string][]string{
	"Sneakers":      {"sneaker", "shoe", "jordan", "yeezy", "nike", "adidas", "dunk"},
	"Clothing":      {"shirt", "jacket", "hoodie", "jeans", "supreme", "streetwear", "dress"},
	"Bags":          {"bag", "purse", "handbag", "birkin", "louis vuitton", "gucci", "wallet"},
	"Watches":       {"watch", "rolex", "omega", "seiko", "chronograph", "submariner"},
	"Electronics":   {"phone", "laptop", "camera", "console", "iphone", "macbook", "playstation", "xbox", "headphones"},
	"Home":          {"chair", "table", "lamp", "rug", "furniture", "aeron", "cookware"},
	"Trading Cards": {"pokemon", "mtg", "magic the gathering", "topps", "psa", "rookie card", "charizard"},
	"Collectibles":  {"funko", "figurine", "memorabilia", "vintage", "autograph", "limited edition"},
	"LEGO":          {"lego", "minifig", "technic"},
	"Vinyl & Music": {"vinyl", "record", "lp", "turntable", "pressing"},
	"Coins & Stamps": {"coin", "stamp", "bullion", "numismatic", "morgan dollar"},
	"Tools":         {"drill", "saw", "dewalt", "milwaukee", "power tool"},
	"Automotive":    {"car part", "bumper", "exhaust", "headlight", "wheel"},
}

// InferCategories guesses the item categories a free-text query refers to.
func InferCategories(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matched []string
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				matched = append(matched, category)
				break
			}
		}
	}
	sort.Strings(matched)
	return matched
}

// MarketplaceLinks builds search links relevant to the query. A non-empty
// category filters to marketplaces serving it; otherwise categories are
// inferred from the query, and category-specific marketplaces only appear
// when an inferred category matches.
func MarketplaceLinks(category, query string) []models.MarketplaceLink {
	escaped := url.QueryEscape(query)

	var effective []string
	if category != "" && category != "All" {
		effective = []string{category}
	} else {
		effective = InferCategories(query)
	}

	names := make([]string, 0, len(marketplaceDB))
	for name := range marketplaceDB {
		names = append(names, name)
	}
	sort.Strings(names)

	var links []models.MarketplaceLink
	for _, name := range names {
		def := marketplaceDB[name]
		if def.categories != nil && !intersects(def.categories, effective) {
			continue
		}
		links = append(links, models.MarketplaceLink{
			Name:        name,
			URL:         strings.Replace(def.urlPattern, "%s", escaped, 1),
			Description: def.desc,
		})
	}
	return links
}

// SocialLinks builds social platform search links for research.
func SocialLinks(query string) []models.SocialLink {
	escaped := url.QueryEscape(query)
	return []models.SocialLink{
		{Name: "TikTok", URL: "https://www.tiktok.com/search?q=" + escaped},
		{Name: "Instagram", URL: "https://www.instagram.com/explore/tags/" + strings.ReplaceAll(escaped, "+", "") + "/"},
		{Name: "YouTube", URL: "https://www.youtube.com/results?search_query=" + escaped + "+review"},
		{Name: "X / Twitter", URL: "https://x.com/search?q=" + escaped + "&f=live"},
	}
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
