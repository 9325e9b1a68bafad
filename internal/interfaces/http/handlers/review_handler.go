package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/interfaces/http/middleware"
	"vendor-hub.backend/internal/interfaces/http/response"
	"vendor-hub.backend/internal/usecases"
	"vendor-hub.backend/pkg/utils"
)

// ReviewHandler handles customer review endpoints
type ReviewHandler struct {
	reviewUsecase *usecases.ReviewUsecase
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewUsecase *usecases.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase}
}

// Create records a review for a merchant and kicks off a rating recompute
// POST /api/v1/merchants/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	var input entities.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewerID, _ := middleware.GetUserID(c)

	review, err := h.reviewUsecase.Create(c.Request.Context(), merchantID, reviewerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// Update edits an existing review
// PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid review id"))
		return
	}

	var input entities.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	review, err := h.reviewUsecase.Update(c.Request.Context(), reviewID, actorID, role == "admin", &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// Delete removes a review
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid review id"))
		return
	}

	actorID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	if err := h.reviewUsecase.Delete(c.Request.Context(), reviewID, actorID, role == "admin"); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// List returns a merchant's reviews with pagination
// GET /api/v1/merchants/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	reviews, total, err := h.reviewUsecase.ListForMerchant(c.Request.Context(), merchantID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"reviews":    reviews,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
