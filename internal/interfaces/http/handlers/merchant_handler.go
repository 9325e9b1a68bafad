package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/domain/repositories"
	"vendor-hub.backend/internal/interfaces/http/middleware"
	"vendor-hub.backend/internal/interfaces/http/response"
	"vendor-hub.backend/internal/usecases"
	"vendor-hub.backend/pkg/utils"
)

// MerchantHandler handles merchant lifecycle endpoints
type MerchantHandler struct {
	provisioningUsecase *usecases.ProvisioningUsecase
	verificationUsecase *usecases.VerificationUsecase
	merchantRepo        repositories.MerchantRepository
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(
	provisioningUsecase *usecases.ProvisioningUsecase,
	verificationUsecase *usecases.VerificationUsecase,
	merchantRepo repositories.MerchantRepository,
) *MerchantHandler {
	return &MerchantHandler{
		provisioningUsecase: provisioningUsecase,
		verificationUsecase: verificationUsecase,
		merchantRepo:        merchantRepo,
	}
}

type adminCreateInput struct {
	entities.MerchantProfileInput
	AutoVerify       bool   `json:"autoVerify"`
	AutoVerifyReason string `json:"autoVerifyReason,omitempty"`
}

// AdminCreate provisions a merchant account and issues setup credentials
// POST /api/v1/merchants/admin/create
func (h *MerchantHandler) AdminCreate(c *gin.Context) {
	var input adminCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := middleware.GetUserID(c)

	result, err := h.provisioningUsecase.CreateByAdmin(c.Request.Context(), &input.MerchantProfileInput, input.AutoVerify, input.AutoVerifyReason, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

type registerInput struct {
	entities.MerchantProfileInput
	Password string `json:"password" binding:"required"`
}

// Register self-registers a merchant account
// POST /api/v1/merchants/register
func (h *MerchantHandler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	merchant, err := h.provisioningUsecase.Register(c.Request.Context(), &input.MerchantProfileInput, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, merchant)
}

// GetSetupInfo returns the setup page metadata for a token
// GET /api/v1/merchants/setup/:token
func (h *MerchantHandler) GetSetupInfo(c *gin.Context) {
	info, err := h.provisioningUsecase.GetSetupInfo(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, info)
}

// CompleteSetup redeems a setup token and sets the merchant password
// POST /api/v1/merchants/setup/:token
func (h *MerchantHandler) CompleteSetup(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	merchant, err := h.provisioningUsecase.CompleteSetup(c.Request.Context(), c.Param("token"), input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, merchant)
}

// List lists merchants with filters and pagination (admin)
// GET /api/v1/merchants
func (h *MerchantHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	filter := repositories.MerchantListFilter{
		Status: entities.OnboardingStatus(c.Query("status")),
		Search: c.Query("search"),
		Limit:  params.Limit,
		Offset: params.CalculateOffset(),
	}
	if v := c.Query("verified"); v != "" {
		verified := v == "true"
		filter.Verified = &verified
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}

	merchants, total, err := h.merchantRepo.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchants":  merchants,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Get returns one merchant
// GET /api/v1/merchants/:id
func (h *MerchantHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	merchant, err := h.merchantRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, merchant)
}

// Update applies a profile edit, recomputing completeness before the write
// PUT /api/v1/merchants/:id
func (h *MerchantHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	if !canActOnMerchant(c, id) {
		response.Error(c, domainerrors.Forbidden("cannot modify another merchant"))
		return
	}

	var input entities.MerchantProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	merchant, err := h.provisioningUsecase.UpdateProfile(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, merchant)
}

// Verify performs the admin verification action
// PUT /api/v1/merchants/:id/verify
func (h *MerchantHandler) Verify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	var input struct {
		Notes string `json:"notes,omitempty"`
	}
	// Body is optional
	_ = c.ShouldBindJSON(&input)

	actorID, _ := middleware.GetUserID(c)

	merchant, _, err := h.verificationUsecase.Verify(c.Request.Context(), id, actorID, input.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, merchant)
}

// History returns a merchant's verification audit trail (admin)
// GET /api/v1/merchants/:id/history
func (h *MerchantHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	entries, err := h.verificationUsecase.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"history": entries})
}

// canActOnMerchant allows admins, or the merchant acting on itself
func canActOnMerchant(c *gin.Context, merchantID uuid.UUID) bool {
	role, _ := middleware.GetUserRole(c)
	if role == "admin" {
		return true
	}
	subject, ok := middleware.GetUserID(c)
	return ok && subject == merchantID
}
