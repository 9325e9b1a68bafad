package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/interfaces/http/middleware"
	"vendor-hub.backend/internal/interfaces/http/response"
	"vendor-hub.backend/internal/usecases"
)

// MaxDocumentUploadBytes bounds a single uploaded file
const MaxDocumentUploadBytes = 10 << 20

// DocumentHandler handles verification document endpoints
type DocumentHandler struct {
	documentUsecase *usecases.DocumentUsecase
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentUsecase *usecases.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{documentUsecase: documentUsecase}
}

// Upload accepts a multipart batch of verification documents. Each form file
// field is named after its document type; unknown field names are rejected.
// PUT /api/v1/merchants/:id/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	if !canActOnMerchant(c, merchantID) {
		response.Error(c, domainerrors.Forbidden("cannot upload documents for another merchant"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid multipart form"))
		return
	}

	var uploads []usecases.DocumentUpload
	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()

	for field, files := range form.File {
		docType := entities.DocumentType(field)
		if !docType.IsValid() {
			response.Error(c, domainerrors.Validation("unknown document type: "+field, nil))
			return
		}
		for _, fh := range files {
			if fh.Size > MaxDocumentUploadBytes {
				response.Error(c, domainerrors.Validation("file too large: "+fh.Filename, nil))
				return
			}
			f, err := fh.Open()
			if err != nil {
				response.Error(c, domainerrors.InternalError(err))
				return
			}
			closers = append(closers, f)
			uploads = append(uploads, usecases.DocumentUpload{
				Type:             docType,
				OriginalFilename: fh.Filename,
				MimeType:         fh.Header.Get("Content-Type"),
				Size:             fh.Size,
				Content:          f,
			})
		}
	}

	result, err := h.documentUsecase.Submit(c.Request.Context(), merchantID, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// List returns a merchant's document records, active ones first
// GET /api/v1/merchants/:id/documents
func (h *DocumentHandler) List(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	if !canActOnMerchant(c, merchantID) {
		response.Error(c, domainerrors.Forbidden("cannot list documents of another merchant"))
		return
	}

	docs, err := h.documentUsecase.ListForMerchant(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

// View streams the active document of the given type back to the caller
// GET /api/v1/merchants/:id/documents/:type
func (h *DocumentHandler) View(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	if !canActOnMerchant(c, merchantID) {
		response.Error(c, domainerrors.Forbidden("cannot view documents of another merchant"))
		return
	}

	docType := entities.DocumentType(c.Param("type"))
	if !docType.IsValid() {
		response.Error(c, domainerrors.Validation("unknown document type: "+c.Param("type"), nil))
		return
	}

	doc, body, err := h.documentUsecase.View(c.Request.Context(), merchantID, docType)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `inline; filename="`+doc.OriginalFilename+`"`)
	c.DataFromReader(http.StatusOK, doc.Size, doc.MimeType, body, nil)
}

type reviewDocumentInput struct {
	Status entities.DocumentStatus `json:"status" binding:"required"`
	Notes  string                  `json:"notes,omitempty"`
}

// Review records an admin decision on a document
// PUT /api/v1/documents/:id/review
func (h *DocumentHandler) Review(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid document id"))
		return
	}

	var input reviewDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewerID, _ := middleware.GetUserID(c)

	doc, err := h.documentUsecase.Review(c.Request.Context(), documentID, reviewerID, input.Status, input.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// Stats returns document counts grouped by review status (admin)
// GET /api/v1/documents/stats
func (h *DocumentHandler) Stats(c *gin.Context) {
	stats, err := h.documentUsecase.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
