package models

import (
	"time"
)

// WatchlistItem tracks a product the user does not own yet, with a target
// price to buy at. LinkedItemID points at an inventory item once bought.
type WatchlistItem struct {
	ID             string              `json:"id" gorm:"primaryKey"`
	UserID         string              `json:"user_id" gorm:"not null;index"`
	Name           string              `json:"name" gorm:"not null"`
	Brand          string              `json:"brand"`
	Model          string              `json:"model"`
	Category       string              `json:"category"`
	Emoji          string              `json:"emoji"`
	TargetPrice    float64             `json:"target_price"`
	LastKnownPrice float64             `json:"last_known_price"`
	PriceHistory   []WatchlistSnapshot `json:"price_history" gorm:"foreignKey:WatchlistID;constraint:OnDelete:CASCADE"`
	LinkedItemID   *string             `json:"linked_item_id"`
	AddedAt        time.Time           `json:"added_at"`
}

// WatchlistSnapshot records a watched product's known price on a given day.
type WatchlistSnapshot struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	WatchlistID string    `json:"watchlist_id" gorm:"not null;uniqueIndex:idx_watchlist_snapshot_day"`
	Date        time.Time `json:"date" gorm:"not null;uniqueIndex:idx_watchlist_snapshot_day"`
	Value       float64   `json:"value"`
}

type CreateWatchlistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Category    string  `json:"category"`
	Emoji       string  `json:"emoji"`
	TargetPrice float64 `json:"target_price" binding:"min=0"`
}
