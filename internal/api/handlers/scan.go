package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/praperty/photo2value/internal/services"
)

type ScanHandler struct {
	barcode *services.BarcodeService
}

func NewScanHandler(barcode *services.BarcodeService) *ScanHandler {
	return &ScanHandler{barcode: barcode}
}

// LookupBarcode resolves a UPC/EAN to product details for form autofill.
func (h *ScanHandler) LookupBarcode(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	product, err := h.barcode.Lookup(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no product found for barcode"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// MatchProduct suggests brand/model/category from a free-text name.
func (h *ScanHandler) MatchProduct(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	match := services.MatchProduct(query)
	if match == nil {
		c.JSON(http.StatusOK, gin.H{"match": nil, "brands": services.KnownBrands()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}
