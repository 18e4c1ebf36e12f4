package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Condition string

const (
	ConditionNew       Condition = "New"
	ConditionLikeNew   Condition = "Like New"
	ConditionExcellent Condition = "Excellent"
	ConditionVeryGood  Condition = "Very Good"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
	ConditionPoor      Condition = "Poor"
)

// AllConditions returns all valid item conditions, best first
func AllConditions() []Condition {
	return []Condition{
		ConditionNew,
		ConditionLikeNew,
		ConditionExcellent,
		ConditionVeryGood,
		ConditionGood,
		ConditionFair,
		ConditionPoor,
	}
}

// NormalizeCondition maps free-form condition strings to our Condition type.
// Returns ConditionGood as default for unknown/empty values.
func NormalizeCondition(cond string) Condition {
	switch strings.ToLower(strings.TrimSpace(cond)) {
	case "new", "brand new", "nwt":
		return ConditionNew
	case "like new", "likenew", "open box":
		return ConditionLikeNew
	case "excellent", "ex":
		return ConditionExcellent
	case "very good", "vg":
		return ConditionVeryGood
	case "good", "":
		return ConditionGood
	case "fair", "acceptable":
		return ConditionFair
	case "poor", "damaged", "for parts":
		return ConditionPoor
	default:
		return ConditionGood
	}
}

// PhotoList stores photo references as a JSON array in a single column.
// The UI caps this at 5 entries; the backend stores whatever validated list
// it is given.
type PhotoList []string

func (p PhotoList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (p *PhotoList) Scan(value interface{}) error {
	if value == nil {
		*p = PhotoList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported photo list type %T", value)
	}
	if len(data) == 0 {
		*p = PhotoList{}
		return nil
	}
	return json.Unmarshal(data, p)
}

// Item is the central entity: a tracked possession with cost, market value,
// and resale metadata. An item is sold iff DateSold is set; Earnings stays
// nil while the item is active.
type Item struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	UserID        string          `json:"user_id" gorm:"not null;index"`
	Name          string          `json:"name" gorm:"not null;index"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Category      string          `json:"category"`
	Condition     Condition       `json:"condition" gorm:"default:'Good'"`
	Cost          float64         `json:"cost"`
	Asking        float64         `json:"asking"` // 0 = not listed
	Value         float64         `json:"value"`
	Earnings      *float64        `json:"earnings"`
	Emoji         string          `json:"emoji"`
	Notes         string          `json:"notes"`
	DatePurchased *time.Time      `json:"date_purchased"`
	DateSold      *time.Time      `json:"date_sold"`
	SoldPlatform  string          `json:"sold_platform"`
	Photos        PhotoList       `json:"photos" gorm:"type:text"`
	Comps         []Comp          `json:"comps" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	PriceHistory  []PriceSnapshot `json:"price_history" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsSold reports whether the item has been sold. DateSold is the sole
// discriminator between active and sold items.
func (i *Item) IsSold() bool {
	return i.DateSold != nil
}

// Comp is a comparable market listing or sale used to estimate an item's
// current value. Only comps with price > 0 contribute to revaluation.
type Comp struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	ItemID    string     `json:"item_id" gorm:"not null;index"`
	Title     string     `json:"title" gorm:"not null"`
	Price     float64    `json:"price"`
	Source    string     `json:"source"`
	Condition string     `json:"condition"`
	Date      *time.Time `json:"date"`
	URL       string     `json:"url"`
	CreatedAt time.Time  `json:"created_at"`
}

// PriceSnapshot records an item's market value on a given day. At most one
// snapshot exists per item per calendar day; re-valuations on the same day
// overwrite the existing row, so snapshot dates are strictly increasing per
// item.
type PriceSnapshot struct {
	ID     uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemID string    `json:"item_id" gorm:"not null;uniqueIndex:idx_item_snapshot_day"`
	Date   time.Time `json:"date" gorm:"not null;uniqueIndex:idx_item_snapshot_day"`
	Value  float64   `json:"value"`
}

type CreateItemRequest struct {
	Name          string     `json:"name" binding:"required"`
	Brand         string     `json:"brand"`
	Model         string     `json:"model"`
	Category      string     `json:"category"`
	Condition     Condition  `json:"condition"`
	Cost          float64    `json:"cost" binding:"min=0"`
	Asking        float64    `json:"asking" binding:"min=0"`
	Value         float64    `json:"value" binding:"min=0"`
	Emoji         string     `json:"emoji"`
	Notes         string     `json:"notes"`
	DatePurchased *time.Time `json:"date_purchased"`
	Photos        []string   `json:"photos"`
}

type UpdateItemRequest struct {
	Name          *string    `json:"name"`
	Brand         *string    `json:"brand"`
	Model         *string    `json:"model"`
	Category      *string    `json:"category"`
	Condition     *Condition `json:"condition"`
	Cost          *float64   `json:"cost"`
	Asking        *float64   `json:"asking"`
	Value         *float64   `json:"value"`
	Emoji         *string    `json:"emoji"`
	Notes         *string    `json:"notes"`
	DatePurchased *time.Time `json:"date_purchased"`
	Photos        *[]string  `json:"photos"`
}

type MarkSoldRequest struct {
	Earnings     float64    `json:"earnings" binding:"min=0"`
	SoldPlatform string     `json:"sold_platform"`
	DateSold     *time.Time `json:"date_sold"`
}

type AddCompRequest struct {
	Title     string     `json:"title" binding:"required"`
	Price     float64    `json:"price" binding:"min=0"`
	Source    string     `json:"source"`
	Condition string     `json:"condition"`
	Date      *time.Time `json:"date"`
	URL       string     `json:"url"`
}
