package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/infrastructure/models"
)

// DocumentRepository implements verification document metadata operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document metadata record
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt

	m := r.toModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var m models.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetActiveByType returns the active record for a merchant and document type
func (r *DocumentRepository) GetActiveByType(ctx context.Context, merchantID uuid.UUID, docType entities.DocumentType) (*entities.Document, error) {
	var m models.Document
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND type = ? AND active = ?", merchantID, string(docType), true).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListForMerchant lists all document records for a merchant, superseded ones included
func (r *DocumentRepository) ListForMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.Document, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("merchant_id = ?", merchantID))
}

// ListActiveForMerchant lists only the active document records for a merchant
func (r *DocumentRepository) ListActiveForMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.Document, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("merchant_id = ? AND active = ?", merchantID, true))
}

func (r *DocumentRepository) list(ctx context.Context, query *gorm.DB) ([]*entities.Document, error) {
	var docModels []models.Document
	if err := query.Order("created_at DESC").Find(&docModels).Error; err != nil {
		return nil, err
	}
	docs := make([]*entities.Document, 0, len(docModels))
	for _, m := range docModels {
		model := m
		docs = append(docs, r.toEntity(&model))
	}
	return docs, nil
}

// Update updates a document's review fields
func (r *DocumentRepository) Update(ctx context.Context, doc *entities.Document) error {
	doc.UpdatedAt = time.Now()
	updates := map[string]interface{}{
		"status":     string(doc.Status),
		"notes":      doc.Notes,
		"active":     doc.Active,
		"updated_at": doc.UpdatedAt,
	}
	if doc.ReviewedBy.Valid {
		updates["reviewed_by"] = doc.ReviewedBy.String
	}
	if doc.ReviewedAt.Valid {
		updates["reviewed_at"] = doc.ReviewedAt.Time
	}

	result := r.db.WithContext(ctx).Model(&models.Document{}).Where("id = ?", doc.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Deactivate marks a record inactive so a re-submission supersedes it
func (r *DocumentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetStatusForMerchant sets the review status on all active documents of a merchant
func (r *DocumentRepository) SetStatusForMerchant(ctx context.Context, merchantID uuid.UUID, status entities.DocumentStatus) error {
	return r.db.WithContext(ctx).Model(&models.Document{}).
		Where("merchant_id = ? AND active = ?", merchantID, true).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()}).Error
}

// GetStats aggregates active document counts by status and type across all merchants
func (r *DocumentRepository) GetStats(ctx context.Context) (*entities.DocumentStats, error) {
	stats := &entities.DocumentStats{
		ByStatus: make(map[entities.DocumentStatus]int64),
		ByType:   make(map[entities.DocumentType]int64),
	}

	base := r.db.WithContext(ctx).Model(&models.Document{}).Where("active = ?", true)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byStatus []bucket
	if err := base.Session(&gorm.Session{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		stats.ByStatus[entities.DocumentStatus(b.Key)] = b.Count
	}

	var byType []bucket
	if err := base.Session(&gorm.Session{}).
		Select("type AS key, COUNT(*) AS count").
		Group("type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, b := range byType {
		stats.ByType[entities.DocumentType(b.Key)] = b.Count
	}

	return stats, nil
}

func (r *DocumentRepository) toModel(e *entities.Document) *models.Document {
	m := &models.Document{
		ID:               e.ID,
		MerchantID:       e.MerchantID,
		Type:             string(e.Type),
		StorageLocator:   e.StorageLocator,
		OriginalFilename: e.OriginalFilename,
		Size:             e.Size,
		MimeType:         e.MimeType,
		Status:           string(e.Status),
		Notes:            e.Notes,
		Active:           e.Active,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.ReviewedBy.Valid {
		m.ReviewedBy = e.ReviewedBy.String
	}
	if e.ReviewedAt.Valid {
		t := e.ReviewedAt.Time
		m.ReviewedAt = &t
	}
	return m
}

func (r *DocumentRepository) toEntity(m *models.Document) *entities.Document {
	e := &entities.Document{
		ID:               m.ID,
		MerchantID:       m.MerchantID,
		Type:             entities.DocumentType(m.Type),
		StorageLocator:   m.StorageLocator,
		OriginalFilename: m.OriginalFilename,
		Size:             m.Size,
		MimeType:         m.MimeType,
		Status:           entities.DocumentStatus(m.Status),
		Notes:            m.Notes,
		Active:           m.Active,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.ReviewedBy != "" {
		e.ReviewedBy.SetValid(m.ReviewedBy)
	}
	if m.ReviewedAt != nil {
		e.ReviewedAt.SetValid(*m.ReviewedAt)
	}
	return e
}
