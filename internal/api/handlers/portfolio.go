package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praperty/photo2value/internal/database"
	"github.com/praperty/photo2value/internal/models"
	"github.com/praperty/photo2value/internal/services"
)

type PortfolioHandler struct {
	snapshots *services.SnapshotService
}

func NewPortfolioHandler(snapshots *services.SnapshotService) *PortfolioHandler {
	return &PortfolioHandler{snapshots: snapshots}
}

func (h *PortfolioHandler) GetStats(c *gin.Context) {
	stats, err := services.CalculateStats(database.GetDB(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *PortfolioHandler) GetHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	snapshots, err := h.snapshots.GetHistory(userID(c), period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.PortfolioHistoryResponse{
		Snapshots: snapshots,
		Period:    period,
	})
}

// Snapshot forces an immediate portfolio snapshot for the user.
func (h *PortfolioHandler) Snapshot(c *gin.Context) {
	if err := h.snapshots.TakeSnapshot(userID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": "ok"})
}
