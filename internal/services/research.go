package services

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/praperty/photo2value/internal/models"
)

const recentCompLimit = 10

// ResearchService aggregates community item and comp data for a free-text
// query. The output feeds the buy/sell signal scorer, which stays pure.
type ResearchService struct {
	db *gorm.DB
}

func NewResearchService(db *gorm.DB) *ResearchService {
	return &ResearchService{db: db}
}

// CommunityData bundles the aggregate stats with supporting detail rows.
type CommunityData struct {
	Stats       models.AggregateStats
	Categories  []string
	RecentComps []models.Comp
}

// Aggregate computes community-wide stats for items matching the query by
// name, brand, or model. Matching is case-insensitive substring.
func (s *ResearchService) Aggregate(query string) (*CommunityData, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &CommunityData{}, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"

	var items []models.Item
	err := s.db.
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?", pattern, pattern, pattern).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}

	data := &CommunityData{}
	categories := map[string]bool{}
	var itemIDs []string

	var valueSum, costSum, soldSum float64
	low, high := 0.0, 0.0
	for i := range items {
		it := &items[i]
		itemIDs = append(itemIDs, it.ID)
		if it.Category != "" {
			categories[it.Category] = true
		}

		if it.IsSold() {
			data.Stats.SoldCount++
			if it.Earnings != nil {
				soldSum += *it.Earnings
			}
			continue
		}

		data.Stats.Listings++
		valueSum += it.Value
		costSum += it.Cost
		if low == 0 || (it.Value > 0 && it.Value < low) {
			low = it.Value
		}
		if it.Value > high {
			high = it.Value
		}
	}

	if data.Stats.Listings > 0 {
		n := float64(data.Stats.Listings)
		data.Stats.AvgValue = valueSum / n
		data.Stats.AvgCost = costSum / n
		data.Stats.LowValue = low
		data.Stats.HighValue = high
	}
	if data.Stats.SoldCount > 0 {
		data.Stats.AvgSold = soldSum / float64(data.Stats.SoldCount)
	}

	if len(itemIDs) > 0 {
		var comps []models.Comp
		if err := s.db.Where("item_id IN ?", itemIDs).Order("created_at DESC").Find(&comps).Error; err != nil {
			return nil, fmt.Errorf("loading comps: %w", err)
		}

		data.Stats.TotalComps = len(comps)
		compSum := 0.0
		priced := 0
		for _, c := range comps {
			if c.Price > 0 {
				compSum += c.Price
				priced++
			}
		}
		if priced > 0 {
			data.Stats.AvgComp = compSum / float64(priced)
		}
		if len(comps) > recentCompLimit {
			comps = comps[:recentCompLimit]
		}
		data.RecentComps = comps
	}

	for c := range categories {
		data.Categories = append(data.Categories, c)
	}
	sort.Strings(data.Categories)

	return data, nil
}
