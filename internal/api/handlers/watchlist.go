package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/praperty/photo2value/internal/database"
	"github.com/praperty/photo2value/internal/models"
)

type WatchlistHandler struct{}

func NewWatchlistHandler() *WatchlistHandler {
	return &WatchlistHandler{}
}

func (h *WatchlistHandler) List(c *gin.Context) {
	db := database.GetDB()

	var entries []models.WatchlistItem
	err := db.Where("user_id = ?", userID(c)).
		Preload("PriceHistory", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Order("added_at DESC").
		Find(&entries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *WatchlistHandler) Create(c *gin.Context) {
	var req models.CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emoji := req.Emoji
	if emoji == "" {
		emoji = "👀"
	}

	entry := models.WatchlistItem{
		ID:          uuid.New().String(),
		UserID:      userID(c),
		Name:        req.Name,
		Brand:       req.Brand,
		Model:       req.Model,
		Category:    req.Category,
		Emoji:       emoji,
		TargetPrice: req.TargetPrice,
		AddedAt:     time.Now(),
	}

	db := database.GetDB()
	if err := db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *WatchlistHandler) Delete(c *gin.Context) {
	db := database.GetDB()

	var entry models.WatchlistItem
	err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID(c)).First(&entry).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "watchlist entry not found"})
		return
	}

	if err := db.Select("PriceHistory").Delete(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": entry.ID})
}
