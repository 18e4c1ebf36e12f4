package services

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/praperty/photo2value/internal/models"
)

// ValuationService recalculates an item's market value from its comps and
// maintains the per-day price history.
type ValuationService struct {
	db *gorm.DB
}

func NewValuationService(db *gorm.DB) *ValuationService {
	return &ValuationService{db: db}
}

// CompAverage returns the mean price of the comps that carry a price.
// Comps with price <= 0 do not count. Returns 0 when nothing counts.
func CompAverage(comps []models.Comp) float64 {
	total := 0.0
	counted := 0
	for _, c := range comps {
		if c.Price > 0 {
			total += c.Price
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return math.Round(total/float64(counted)*100) / 100
}

// Revalue recomputes the item's market value from its comps, persists it,
// and records a price snapshot for today. Items with no priced comps keep
// their current value.
func (s *ValuationService) Revalue(item *models.Item) error {
	var comps []models.Comp
	if err := s.db.Where("item_id = ?", item.ID).Order("created_at ASC").Find(&comps).Error; err != nil {
		return fmt.Errorf("loading comps: %w", err)
	}

	avg := CompAverage(comps)
	if avg <= 0 {
		return nil
	}

	item.Value = avg
	item.Comps = comps
	if err := s.db.Model(&models.Item{}).Where("id = ?", item.ID).Update("value", avg).Error; err != nil {
		return fmt.Errorf("updating value: %w", err)
	}

	return s.RecordSnapshot(item.ID, avg, time.Now())
}

// RecordSnapshot upserts the item's price snapshot for the given day,
// keeping at most one entry per item per calendar day so snapshot dates
// stay strictly increasing.
func (s *ValuationService) RecordSnapshot(itemID string, value float64, at time.Time) error {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())

	snapshot := models.PriceSnapshot{
		ItemID: itemID,
		Date:   day,
		Value:  value,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&snapshot).Error
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return nil
}
