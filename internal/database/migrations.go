package database

import (
	"log"

	"gorm.io/gorm"
)

// cleanupDuplicateSnapshots removes duplicate same-day snapshot rows before
// the unique day indexes are added. This runs BEFORE AutoMigrate to prevent
// constraint violations on databases created by older builds.
func cleanupDuplicateSnapshots(db *gorm.DB) error {
	tables := []struct {
		name    string
		groupBy string
	}{
		{"price_snapshots", "item_id, date"},
		{"watchlist_snapshots", "watchlist_id, date"},
		{"portfolio_snapshots", "user_id, snapshot_date"},
	}

	for _, t := range tables {
		if !db.Migrator().HasTable(t.name) {
			continue
		}

		// Keep the newest row per day, drop the rest
		result := db.Exec(`
			DELETE FROM ` + t.name + `
			WHERE id NOT IN (
				SELECT MAX(id)
				FROM ` + t.name + `
				GROUP BY ` + t.groupBy + `
			)
		`)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			log.Printf("Cleaned up %d duplicate rows in %s", result.RowsAffected, t.name)
		}
	}

	return nil
}
