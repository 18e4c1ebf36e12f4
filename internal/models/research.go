package models

// AggregateStats summarizes community items and comps matching a research
// query. It is the input to the buy/sell signal scorer.
type AggregateStats struct {
	Listings   int     `json:"listings"`  // matching active items
	AvgValue   float64 `json:"avg_value"` // mean market value of matches
	LowValue   float64 `json:"low_value"`
	HighValue  float64 `json:"high_value"`
	AvgCost    float64 `json:"avg_cost"`
	SoldCount  int     `json:"sold_count"`
	AvgSold    float64 `json:"avg_sold"` // mean earnings of sold matches
	TotalComps int     `json:"total_comps"`
	AvgComp    float64 `json:"avg_comp_price"`
}

// MarketplaceLink is a ready-to-open search URL on a resale marketplace.
type MarketplaceLink struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// SocialLink is a ready-to-open search URL on a social platform.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
