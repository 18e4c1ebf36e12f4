package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/praperty/photo2value/internal/database"
	"github.com/praperty/photo2value/internal/insights"
	"github.com/praperty/photo2value/internal/metrics"
	"github.com/praperty/photo2value/internal/models"
)

type InsightsHandler struct{}

func NewInsightsHandler() *InsightsHandler {
	return &InsightsHandler{}
}

func userItems(c *gin.Context) ([]models.Item, error) {
	db := database.GetDB()

	var items []models.Item
	err := db.Where("user_id = ?", userID(c)).
		Preload("Comps").
		Preload("PriceHistory", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Find(&items).Error
	return items, err
}

// GetAlerts recomputes the alert feed for the user's current inventory.
func (h *InsightsHandler) GetAlerts(c *gin.Context) {
	items, err := userItems(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	alerts := insights.GenerateAlerts(items, time.Now())
	metrics.AlertGenerationDuration.Observe(time.Since(start).Seconds())
	metrics.AlertsGenerated.Observe(float64(len(alerts)))

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// GetMovers returns up to five items with the largest recent value change.
func (h *InsightsHandler) GetMovers(c *gin.Context) {
	items, err := userItems(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movers": insights.ComputeMovers(items)})
}
