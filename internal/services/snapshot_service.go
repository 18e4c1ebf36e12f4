package services

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/praperty/photo2value/internal/database"
	"github.com/praperty/photo2value/internal/metrics"
	"github.com/praperty/photo2value/internal/models"
)

// SnapshotService records daily portfolio value per user and appends each
// active item's daily price history entry.
type SnapshotService struct {
	mu            sync.RWMutex
	valuation     *ValuationService
	lastSnapshot  time.Time
	snapshotHour  int // Hour of day to take snapshots (0-23)
	checkInterval time.Duration
}

func NewSnapshotService(valuation *ValuationService) *SnapshotService {
	return &SnapshotService{
		valuation:     valuation,
		snapshotHour:  23, // Default: 11 PM
		checkInterval: 15 * time.Minute,
	}
}

// Start begins the background snapshot worker
func (s *SnapshotService) Start(ctx context.Context) {
	log.Println("Snapshot service started: will record daily portfolio values")

	s.checkAndSnapshot()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot service stopping...")
			return
		case <-ticker.C:
			s.checkAndSnapshot()
		}
	}
}

func (s *SnapshotService) checkAndSnapshot() {
	now := time.Now()

	db := database.GetDB()
	var itemCount int64
	if err := db.Model(&models.Item{}).Count(&itemCount).Error; err == nil {
		metrics.ItemsTotal.Set(float64(itemCount))
	}

	if now.Hour() < s.snapshotHour {
		return
	}

	var userIDs []string
	if err := db.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		log.Printf("Snapshot service: failed to list users: %v", err)
		return
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, userID := range userIDs {
		if s.hasSnapshotForDate(userID, today) {
			continue
		}
		if err := s.TakeSnapshot(userID); err != nil {
			log.Printf("Snapshot service: failed to snapshot user %s: %v", userID, err)
		}
	}
}

func (s *SnapshotService) hasSnapshotForDate(userID string, date time.Time) bool {
	db := database.GetDB()

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var count int64
	db.Model(&models.PortfolioSnapshot{}).
		Where("user_id = ? AND snapshot_date >= ? AND snapshot_date < ?", userID, startOfDay, endOfDay).
		Count(&count)

	return count > 0
}

// TakeSnapshot records the user's current portfolio value and stamps every
// active item's price history for today.
func (s *SnapshotService) TakeSnapshot(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := database.GetDB()
	now := time.Now()
	snapshotDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats, err := CalculateStats(db, userID)
	if err != nil {
		return err
	}

	snapshot := models.PortfolioSnapshot{
		UserID:        userID,
		SnapshotDate:  snapshotDate,
		TotalItems:    stats.TotalItems,
		ActiveItems:   stats.ActiveItems,
		TotalValue:    stats.TotalValue,
		TotalCost:     stats.TotalCost,
		TotalEarnings: stats.TotalEarnings,
		CreatedAt:     now,
	}

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_items", "active_items", "total_value", "total_cost", "total_earnings",
		}),
	}).Create(&snapshot).Error
	if err != nil {
		return err
	}

	// Per-item history entries keep the movers heuristic fed with real data
	var items []models.Item
	if err := db.Where("user_id = ? AND date_sold IS NULL", userID).Find(&items).Error; err != nil {
		return err
	}
	for i := range items {
		if err := s.valuation.RecordSnapshot(items[i].ID, items[i].Value, now); err != nil {
			log.Printf("Snapshot service: failed to stamp item %s: %v", items[i].ID, err)
		}
	}

	s.lastSnapshot = now
	metrics.SnapshotsTotal.Inc()
	log.Printf("Snapshot service: recorded portfolio snapshot for user %s on %s (total: $%.2f, items: %d)",
		userID, snapshotDate.Format("2006-01-02"), stats.TotalValue, stats.TotalItems)

	return nil
}

// GetHistory retrieves portfolio snapshots for a given period
func (s *SnapshotService) GetHistory(userID, period string) ([]models.PortfolioSnapshot, error) {
	db := database.GetDB()
	var snapshots []models.PortfolioSnapshot

	now := time.Now()
	var startDate time.Time

	switch period {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "3month":
		startDate = now.AddDate(0, -3, 0)
	case "year":
		startDate = now.AddDate(-1, 0, 0)
	case "all":
		startDate = time.Time{} // No filter
	default:
		startDate = now.AddDate(0, -1, 0) // Default to 1 month
	}

	query := db.Where("user_id = ?", userID).Order("snapshot_date ASC")
	if !startDate.IsZero() {
		query = query.Where("snapshot_date >= ?", startDate)
	}

	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}

// CalculateStats computes current portfolio statistics for a user.
func CalculateStats(db *gorm.DB, userID string) (models.PortfolioStats, error) {
	var stats models.PortfolioStats

	type row struct {
		Sold          bool
		Count         int
		TotalValue    float64
		TotalCost     float64
		TotalEarnings float64
	}

	var rows []row
	err := db.Model(&models.Item{}).
		Select(`date_sold IS NOT NULL as sold,
			COUNT(*) as count,
			COALESCE(SUM(value), 0) as total_value,
			COALESCE(SUM(cost), 0) as total_cost,
			COALESCE(SUM(earnings), 0) as total_earnings`).
		Where("user_id = ?", userID).
		Group("date_sold IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return stats, err
	}

	for _, r := range rows {
		stats.TotalItems += r.Count
		if r.Sold {
			stats.SoldItems = r.Count
			stats.TotalEarnings = r.TotalEarnings
			stats.TotalProfit = r.TotalEarnings - r.TotalCost
		} else {
			stats.ActiveItems = r.Count
			stats.TotalValue = r.TotalValue
			stats.TotalCost = r.TotalCost
		}
	}

	return stats, nil
}
