package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/praperty/photo2value/internal/database"
	"github.com/praperty/photo2value/internal/metrics"
	"github.com/praperty/photo2value/internal/models"
	"github.com/praperty/photo2value/internal/services"
)

// Photo references per item are capped to keep uploads bounded
const maxPhotos = 5

type ItemHandler struct {
	valuation     *services.ValuationService
	refreshWorker *services.RefreshWorker
}

func NewItemHandler(valuation *services.ValuationService, refreshWorker *services.RefreshWorker) *ItemHandler {
	return &ItemHandler{
		valuation:     valuation,
		refreshWorker: refreshWorker,
	}
}

// ownedItem loads an item and verifies it belongs to the requesting user.
func ownedItem(c *gin.Context) (*models.Item, bool) {
	db := database.GetDB()

	var item models.Item
	err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID(c)).First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return nil, false
	}
	return &item, true
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	db := database.GetDB()

	query := db.Where("user_id = ?", userID(c)).
		Preload("Comps").
		Preload("PriceHistory", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Order("created_at DESC")

	// Optional status filter
	switch c.Query("status") {
	case "active":
		query = query.Where("date_sold IS NULL")
	case "sold":
		query = query.Where("date_sold IS NOT NULL")
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Photos) > maxPhotos {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many photos (max 5)"})
		return
	}

	condition := models.NormalizeCondition(string(req.Condition))
	emoji := req.Emoji
	if emoji == "" {
		emoji = "📦"
	}
	// Value defaults to cost until comps establish a market value
	value := req.Value
	if value == 0 {
		value = req.Cost
	}

	item := models.Item{
		ID:            uuid.New().String(),
		UserID:        userID(c),
		Name:          req.Name,
		Brand:         req.Brand,
		Model:         req.Model,
		Category:      req.Category,
		Condition:     condition,
		Cost:          req.Cost,
		Asking:        req.Asking,
		Value:         value,
		Emoji:         emoji,
		Notes:         req.Notes,
		DatePurchased: req.DatePurchased,
		Photos:        models.PhotoList(req.Photos),
		CreatedAt:     time.Now(),
	}

	db := database.GetDB()
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.ItemsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	db := database.GetDB()

	var item models.Item
	err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID(c)).
		Preload("Comps").
		Preload("PriceHistory", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	item, ok := ownedItem(c)
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Cost != nil && *req.Cost < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cost must be non-negative"})
		return
	}
	if req.Value != nil && *req.Value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be non-negative"})
		return
	}
	if req.Photos != nil && len(*req.Photos) > maxPhotos {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many photos (max 5)"})
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.Model != nil {
		item.Model = *req.Model
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Condition != nil {
		item.Condition = *req.Condition
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Asking != nil {
		item.Asking = *req.Asking
	}
	if req.Value != nil {
		item.Value = *req.Value
	}
	if req.Emoji != nil {
		item.Emoji = *req.Emoji
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.DatePurchased != nil {
		item.DatePurchased = req.DatePurchased
	}
	if req.Photos != nil {
		item.Photos = models.PhotoList(*req.Photos)
	}

	db := database.GetDB()
	if err := db.Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// A manual value edit still counts as a valuation for today
	if req.Value != nil {
		if err := h.valuation.RecordSnapshot(item.ID, item.Value, time.Now()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	item, ok := ownedItem(c)
	if !ok {
		return
	}

	db := database.GetDB()
	if err := db.Select("Comps", "PriceHistory").Delete(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": item.ID})
}

func (h *ItemHandler) MarkSold(c *gin.Context) {
	item, ok := ownedItem(c)
	if !ok {
		return
	}
	if item.IsSold() {
		c.JSON(http.StatusConflict, gin.H{"error": "item is already sold"})
		return
	}

	var req models.MarkSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	soldAt := time.Now()
	if req.DateSold != nil {
		soldAt = *req.DateSold
	}
	earnings := req.Earnings

	item.DateSold = &soldAt
	item.SoldPlatform = req.SoldPlatform
	item.Earnings = &earnings

	db := database.GetDB()
	if err := db.Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.ItemsSoldTotal.Inc()
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) AddComp(c *gin.Context) {
	item, ok := ownedItem(c)
	if !ok {
		return
	}

	var req models.AddCompRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comp := models.Comp{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		Title:     req.Title,
		Price:     req.Price,
		Source:    req.Source,
		Condition: req.Condition,
		Date:      req.Date,
		URL:       req.URL,
		CreatedAt: time.Now(),
	}

	db := database.GetDB()
	if err := db.Create(&comp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Comp changes drive the market value
	if err := h.valuation.Revalue(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comp": comp, "value": item.Value})
}

func (h *ItemHandler) DeleteComp(c *gin.Context) {
	item, ok := ownedItem(c)
	if !ok {
		return
	}

	db := database.GetDB()
	result := db.Where("id = ? AND item_id = ?", c.Param("compID"), item.ID).Delete(&models.Comp{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "comp not found"})
		return
	}

	if err := h.valuation.Revalue(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("compID"), "value": item.Value})
}

// RefreshComps queues the item for a background eBay comp refresh.
func (h *ItemHandler) RefreshComps(c *gin.Context) {
	item, ok := ownedItem(c)
	if !ok {
		return
	}
	if item.IsSold() {
		c.JSON(http.StatusConflict, gin.H{"error": "sold items are not refreshed"})
		return
	}

	position := h.refreshWorker.QueueRefresh(item.ID)
	c.JSON(http.StatusAccepted, gin.H{"queued": item.ID, "position": position})
}

func (h *ItemHandler) GetHistory(c *gin.Context) {
	item, ok := ownedItem(c)
	if !ok {
		return
	}

	db := database.GetDB()
	var snapshots []models.PriceSnapshot
	if err := db.Where("item_id = ?", item.ID).Order("date ASC").Find(&snapshots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}
