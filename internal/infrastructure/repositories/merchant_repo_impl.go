package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/domain/repositories"
	"vendor-hub.backend/internal/infrastructure/models"
)

// MerchantRepository implements merchant data operations
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create creates a new merchant
func (r *MerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	if merchant.ID == uuid.Nil {
		merchant.ID = uuid.New()
	}
	merchant.CreatedAt = time.Now()
	merchant.UpdatedAt = merchant.CreatedAt

	m := r.toModel(merchant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a merchant by ID
func (r *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a merchant by business email
func (r *MerchantRepository) GetByEmail(ctx context.Context, email string) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetBySetupToken gets a merchant by pending setup token
func (r *MerchantRepository) GetBySetupToken(ctx context.Context, token string) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).Where("setup_token = ? AND setup_token <> ''", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists the merchant guarded by its revision counter. A concurrent
// writer that bumped the revision first wins; the loser gets ErrConflict.
func (r *MerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	merchant.UpdatedAt = time.Now()
	m := r.toModel(merchant)
	m.Revision = merchant.Revision + 1

	result := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ? AND revision = ?", merchant.ID, merchant.Revision).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a stale revision from a missing row
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Merchant{}).
			Where("id = ?", merchant.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConflict
	}

	merchant.Revision = m.Revision
	return nil
}

// List lists merchants with optional filters and pagination
func (r *MerchantRepository) List(ctx context.Context, filter repositories.MerchantListFilter) ([]*entities.Merchant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Merchant{})

	if filter.Status != "" {
		query = query.Where("onboarding_status = ?", filter.Status)
	}
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("business_name LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var merchantModels []models.Merchant
	if err := query.Find(&merchantModels).Error; err != nil {
		return nil, 0, err
	}

	merchants := make([]*entities.Merchant, 0, len(merchantModels))
	for _, m := range merchantModels {
		model := m
		merchants = append(merchants, r.toEntity(&model))
	}
	return merchants, total, nil
}

// UpdateRating writes only the aggregate rating fields. It intentionally skips
// the revision guard so a recompute can never lose against a profile write.
func (r *MerchantRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error {
	result := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ClearExpiredSetupTokens blanks setup tokens past their expiry window so they
// can never be redeemed. Returns the number of rows touched.
func (r *MerchantRepository) ClearExpiredSetupTokens(ctx context.Context, limit int) (int64, error) {
	sub := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Select("id").
		Where("setup_token <> '' AND setup_token_expires_at < ?", time.Now()).
		Limit(limit)

	result := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id IN (?)", sub).
		Updates(map[string]interface{}{
			"setup_token":            "",
			"setup_token_expires_at": nil,
			"updated_at":             time.Now(),
		})
	return result.RowsAffected, result.Error
}

// SoftDelete soft deletes a merchant. Deactivation is the preferred path;
// this exists for accounts that never referenced orders or reviews.
func (r *MerchantRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Merchant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MerchantRepository) toModel(e *entities.Merchant) *models.Merchant {
	m := &models.Merchant{
		ID:                    e.ID,
		BusinessName:          e.BusinessName,
		Email:                 e.Email,
		Phone:                 e.Phone,
		BusinessType:          string(e.BusinessType),
		Description:           e.Description,
		Address:               e.Address,
		Location:              e.Location,
		Website:               e.Website.String,
		YearEstablished:       e.YearEstablished.Int64,
		LogoLocator:           e.LogoLocator.String,
		BusinessHours:         e.BusinessHours.String,
		OnboardingStatus:      string(e.OnboardingStatus),
		ProfileCompleteness:   e.ProfileCompleteness,
		DocumentsCompleteness: e.DocumentsCompleteness,
		Verified:              e.Verified,
		IsActive:              e.IsActive,
		Featured:              e.Featured,
		Rating:                e.Rating,
		ReviewCount:           e.ReviewCount,
		PasswordHash:          e.PasswordHash,
		SetupToken:            e.SetupToken,
		Revision:              e.Revision,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
	if e.FeaturedAt.Valid {
		t := e.FeaturedAt.Time
		m.FeaturedAt = &t
	}
	if e.SetupTokenExpiresAt.Valid {
		t := e.SetupTokenExpiresAt.Time
		m.SetupTokenExpiresAt = &t
	}
	if e.AccountSetupAt.Valid {
		t := e.AccountSetupAt.Time
		m.AccountSetupAt = &t
	}
	if e.DocumentsSubmittedAt.Valid {
		t := e.DocumentsSubmittedAt.Time
		m.DocumentsSubmittedAt = &t
	}
	if e.VerifiedAt.Valid {
		t := e.VerifiedAt.Time
		m.VerifiedAt = &t
	}
	return m
}

func (r *MerchantRepository) toEntity(m *models.Merchant) *entities.Merchant {
	e := &entities.Merchant{
		ID:                    m.ID,
		BusinessName:          m.BusinessName,
		Email:                 m.Email,
		Phone:                 m.Phone,
		BusinessType:          entities.BusinessType(m.BusinessType),
		Description:           m.Description,
		Address:               m.Address,
		Location:              m.Location,
		OnboardingStatus:      entities.OnboardingStatus(m.OnboardingStatus),
		ProfileCompleteness:   m.ProfileCompleteness,
		DocumentsCompleteness: m.DocumentsCompleteness,
		Verified:              m.Verified,
		IsActive:              m.IsActive,
		Featured:              m.Featured,
		Rating:                m.Rating,
		ReviewCount:           m.ReviewCount,
		PasswordHash:          m.PasswordHash,
		SetupToken:            m.SetupToken,
		Revision:              m.Revision,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
	if m.Website != "" {
		e.Website.SetValid(m.Website)
	}
	if m.YearEstablished != 0 {
		e.YearEstablished.SetValid(m.YearEstablished)
	}
	if m.LogoLocator != "" {
		e.LogoLocator.SetValid(m.LogoLocator)
	}
	if m.BusinessHours != "" {
		e.BusinessHours.SetValid(m.BusinessHours)
	}
	if m.FeaturedAt != nil {
		e.FeaturedAt.SetValid(*m.FeaturedAt)
	}
	if m.SetupTokenExpiresAt != nil {
		e.SetupTokenExpiresAt.SetValid(*m.SetupTokenExpiresAt)
	}
	if m.AccountSetupAt != nil {
		e.AccountSetupAt.SetValid(*m.AccountSetupAt)
	}
	if m.DocumentsSubmittedAt != nil {
		e.DocumentsSubmittedAt.SetValid(*m.DocumentsSubmittedAt)
	}
	if m.VerifiedAt != nil {
		e.VerifiedAt.SetValid(*m.VerifiedAt)
	}
	return e
}
