package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/praperty/photo2value/internal/insights"
	"github.com/praperty/photo2value/internal/services"
)

type ResearchHandler struct {
	research *services.ResearchService
}

func NewResearchHandler(research *services.ResearchService) *ResearchHandler {
	return &ResearchHandler{research: research}
}

// Research aggregates community listings for a query and scores the market.
func (h *ResearchHandler) Research(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	data, err := h.research.Aggregate(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	category := ""
	if categories := services.InferCategories(query); len(categories) > 0 {
		category = categories[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"query":        query,
		"stats":        data.Stats,
		"signal":       insights.ComputeSignal(data.Stats),
		"categories":   data.Categories,
		"recentComps":  data.RecentComps,
		"marketplaces": services.MarketplaceLinks(category, query),
		"social":       services.SocialLinks(query),
	})
}

// Marketplaces returns selling venue links for a category and query.
func (h *ResearchHandler) Marketplaces(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		if categories := services.InferCategories(query); len(categories) > 0 {
			category = categories[0]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"category":     category,
		"marketplaces": services.MarketplaceLinks(category, query),
		"social":       services.SocialLinks(query),
	})
}
