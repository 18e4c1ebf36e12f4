package services

import (
	"strings"
	"testing"
)

func TestMarketplaceLinksAlwaysIncludeGeneralMarkets(t *testing.T) {
	links := MarketplaceLinks("", "random obscure widget")

	found := map[string]bool{}
	for _, l := range links {
		found[l.Name] = true
	}
	for _, want := range []string{"eBay Sold", "eBay Active", "Amazon", "Google Shopping", "Facebook"} {
		if !found[want] {
			t.Errorf("Expected general marketplace %q in links", want)
		}
	}
	if found["Chrono24"] {
		t.Error("Watch marketplace should not appear for an unrelated query")
	}
}

func TestMarketplaceLinksCategoryFilter(t *testing.T) {
	links := MarketplaceLinks("Watches", "submariner")

	found := map[string]bool{}
	for _, l := range links {
		found[l.Name] = true
	}
	if !found["Chrono24"] {
		t.Error("Chrono24 should appear for Watches category")
	}
	if found["BrickLink"] {
		t.Error("BrickLink should not appear for Watches category")
	}
}

func TestMarketplaceLinksInferredCategory(t *testing.T) {
	// No explicit category: "rolex" should infer Watches
	links := MarketplaceLinks("", "rolex datejust")

	found := map[string]bool{}
	for _, l := range links {
		found[l.Name] = true
	}
	if !found["Chrono24"] {
		t.Error("Chrono24 should appear via inferred Watches category")
	}
}

func TestMarketplaceLinksEscapeQuery(t *testing.T) {
	links := MarketplaceLinks("", "herman miller aeron")
	for _, l := range links {
		if strings.Contains(l.URL, " ") {
			t.Errorf("URL not escaped: %s", l.URL)
		}
	}
}

func TestInferCategories(t *testing.T) {
	got := InferCategories("nike dunk low sneaker")
	if len(got) == 0 {
		t.Fatal("Expected at least one category")
	}
	hasSneakers := false
	for _, c := range got {
		if c == "Sneakers" {
			hasSneakers = true
		}
	}
	if !hasSneakers {
		t.Errorf("Expected Sneakers in %v", got)
	}

	if got := InferCategories(""); got != nil {
		t.Errorf("Expected nil for empty query, got %v", got)
	}
}

func TestSocialLinks(t *testing.T) {
	links := SocialLinks("pokemon cards")
	if len(links) != 4 {
		t.Fatalf("Expected 4 social links, got %d", len(links))
	}
	for _, l := range links {
		if !strings.HasPrefix(l.URL, "https://") {
			t.Errorf("Bad URL: %s", l.URL)
		}
		if strings.Contains(l.URL, " ") {
			t.Errorf("URL not escaped: %s", l.URL)
		}
	}
}
