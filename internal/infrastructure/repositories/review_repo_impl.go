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

// ReviewRepository implements review data operations
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create creates a new review
func (r *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	m := &models.Review{
		ID:         review.ID,
		MerchantID: review.MerchantID,
		ReviewerID: review.ReviewerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Review, error) {
	var m models.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update updates a review's rating and comment
func (r *ReviewRepository) Update(ctx context.Context, review *entities.Review) error {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a review
func (r *ReviewRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListForMerchant lists a merchant's reviews, newest first
func (r *ReviewRepository) ListForMerchant(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("merchant_id = ?", merchantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var reviewModels []models.Review
	if err := query.Find(&reviewModels).Error; err != nil {
		return nil, 0, err
	}

	reviews := make([]*entities.Review, 0, len(reviewModels))
	for _, m := range reviewModels {
		model := m
		reviews = append(reviews, r.toEntity(&model))
	}
	return reviews, total, nil
}

// Aggregate returns avg(rating) and count(*) over live reviews for a merchant
func (r *ReviewRepository) Aggregate(ctx context.Context, merchantID uuid.UUID) (float64, int, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("merchant_id = ?", merchantID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, int(result.Count), nil
}

func (r *ReviewRepository) toEntity(m *models.Review) *entities.Review {
	return &entities.Review{
		ID:         m.ID,
		MerchantID: m.MerchantID,
		ReviewerID: m.ReviewerID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
