package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vendor-hub.backend/internal/interfaces/http/middleware"
	"vendor-hub.backend/internal/interfaces/http/response"
	"vendor-hub.backend/internal/usecases"
)

// MaxBulkBatchSize caps merchant ids accepted per bulk request
const MaxBulkBatchSize = 100

// AdminHandler handles bulk administrative operations
type AdminHandler struct {
	bulkUsecase *usecases.BulkUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(bulkUsecase *usecases.BulkUsecase) *AdminHandler {
	return &AdminHandler{bulkUsecase: bulkUsecase}
}

type bulkVerifyInput struct {
	MerchantIDs []string `json:"merchantIds" binding:"required,min=1"`
	Notes       string   `json:"notes,omitempty"`
}

// BulkVerify verifies each listed merchant, best effort
// POST /api/v1/merchants/bulk-verify
func (h *AdminHandler) BulkVerify(c *gin.Context) {
	var input bulkVerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.MerchantIDs) > MaxBulkBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many merchant ids in one request"})
		return
	}

	actorID, _ := middleware.GetUserID(c)

	result := h.bulkUsecase.BulkVerify(c.Request.Context(), input.MerchantIDs, input.Notes, actorID)
	response.Success(c, http.StatusOK, result)
}

type bulkStatusInput struct {
	MerchantIDs []string `json:"merchantIds" binding:"required,min=1"`
	IsActive    *bool    `json:"isActive" binding:"required"`
}

// BulkSetStatus activates or deactivates each listed merchant, best effort
// PUT /api/v1/merchants/bulk-status
func (h *AdminHandler) BulkSetStatus(c *gin.Context) {
	var input bulkStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.MerchantIDs) > MaxBulkBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many merchant ids in one request"})
		return
	}

	actorID, _ := middleware.GetUserID(c)

	result := h.bulkUsecase.BulkSetStatus(c.Request.Context(), input.MerchantIDs, *input.IsActive, actorID)
	response.Success(c, http.StatusOK, result)
}

type bulkFeaturedInput struct {
	MerchantIDs []string `json:"merchantIds" binding:"required,min=1"`
	Featured    *bool    `json:"featured" binding:"required"`
}

// BulkSetFeatured flags or unflags each listed merchant, best effort
// POST /api/v1/merchants/bulk-featured
func (h *AdminHandler) BulkSetFeatured(c *gin.Context) {
	var input bulkFeaturedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.MerchantIDs) > MaxBulkBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many merchant ids in one request"})
		return
	}

	actorID, _ := middleware.GetUserID(c)

	result := h.bulkUsecase.BulkSetFeatured(c.Request.Context(), input.MerchantIDs, *input.Featured, actorID)
	response.Success(c, http.StatusOK, result)
}
