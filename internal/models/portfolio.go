package models

import (
	"time"
)

// PortfolioStats summarizes a user's inventory at a point in time.
type PortfolioStats struct {
	TotalItems    int     `json:"total_items"`
	ActiveItems   int     `json:"active_items"`
	SoldItems     int     `json:"sold_items"`
	TotalValue    float64 `json:"total_value"`    // active items only
	TotalCost     float64 `json:"total_cost"`     // active items only
	TotalEarnings float64 `json:"total_earnings"` // sold items
	TotalProfit   float64 `json:"total_profit"`   // earnings - cost of sold items
}

// PortfolioSnapshot stores daily portfolio value for historical tracking
type PortfolioSnapshot struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_snapshot_day"`
	SnapshotDate  time.Time `json:"snapshot_date" gorm:"not null;uniqueIndex:idx_user_snapshot_day"`
	TotalItems    int       `json:"total_items"`
	ActiveItems   int       `json:"active_items"`
	TotalValue    float64   `json:"total_value"`
	TotalCost     float64   `json:"total_cost"`
	TotalEarnings float64   `json:"total_earnings"`
	CreatedAt     time.Time `json:"created_at"`
}

// PortfolioHistoryResponse is the API response for portfolio value history
type PortfolioHistoryResponse struct {
	Snapshots []PortfolioSnapshot `json:"snapshots"`
	Period    string              `json:"period"` // "week", "month", "3month", "year", "all"
}
