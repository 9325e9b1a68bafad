package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/domain/repositories"
	"vendor-hub.backend/internal/infrastructure/metrics"
	"vendor-hub.backend/internal/infrastructure/notifier"
	"vendor-hub.backend/pkg/crypto"
)

// ProvisioningResult is returned on admin creation; SetupToken is only ever
// exposed here and in the credential-delivery event.
type ProvisioningResult struct {
	Merchant            *entities.Merchant `json:"merchant"`
	SetupToken          string             `json:"setupToken"`
	SetupTokenExpiresAt time.Time          `json:"setupTokenExpiresAt"`
}

// SetupInfo is the public metadata shown on the setup page
type SetupInfo struct {
	BusinessName string    `json:"businessName"`
	Email        string    `json:"email"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// ProvisioningUsecase creates merchant accounts, issues time-limited setup
// tokens and hands off to the verification state machine at activation.
type ProvisioningUsecase struct {
	merchantRepo  repositories.MerchantRepository
	documentRepo  repositories.DocumentRepository
	historyRepo   repositories.VerificationHistoryRepository
	notifier      notifier.Notifier
	metrics       *metrics.OnboardingMetrics
	setupTokenTTL time.Duration
}

// NewProvisioningUsecase creates a new provisioning usecase
func NewProvisioningUsecase(
	merchantRepo repositories.MerchantRepository,
	documentRepo repositories.DocumentRepository,
	historyRepo repositories.VerificationHistoryRepository,
	n notifier.Notifier,
	m *metrics.OnboardingMetrics,
	setupTokenTTL time.Duration,
) *ProvisioningUsecase {
	return &ProvisioningUsecase{
		merchantRepo:  merchantRepo,
		documentRepo:  documentRepo,
		historyRepo:   historyRepo,
		notifier:      n,
		metrics:       m,
		setupTokenTTL: setupTokenTTL,
	}
}

// CreateByAdmin provisions a merchant account with a single-use setup token.
// The credential-delivery event carries the token; this service never sends
// email itself. autoVerify bypasses document requirements and must leave an
// audited history entry naming the reason.
func (u *ProvisioningUsecase) CreateByAdmin(ctx context.Context, input *entities.MerchantProfileInput, autoVerify bool, reason string, actorID uuid.UUID) (*ProvisioningResult, error) {
	if missing := missingRequiredFields(input); len(missing) > 0 {
		return nil, domainerrors.Validation("required profile fields missing", missing)
	}

	if existing, err := u.merchantRepo.GetByEmail(ctx, input.Email); err != nil && err != domainerrors.ErrNotFound {
		return nil, err
	} else if existing != nil {
		return nil, domainerrors.BadRequest("a merchant with this email already exists")
	}

	token, err := crypto.GenerateSetupToken()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(u.setupTokenTTL)

	merchant := newMerchantFromInput(input)
	merchant.OnboardingStatus = entities.OnboardingCredentialsSent
	merchant.IsActive = true
	merchant.SetupToken = token
	merchant.SetupTokenExpiresAt.SetValid(expiresAt)
	merchant.ProfileCompleteness = CalculateProfileCompleteness(merchant)
	merchant.DocumentsCompleteness = 0

	if autoVerify {
		merchant.Verified = true
		merchant.VerifiedAt.SetValid(time.Now())
		merchant.OnboardingStatus = entities.OnboardingCompleted
	}

	if err := u.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, err
	}

	entry := &entities.VerificationHistoryEntry{
		MerchantID:  merchant.ID,
		Action:      entities.HistoryActionCredentialsSent,
		PerformedBy: actorID,
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if autoVerify {
		bypass := &entities.VerificationHistoryEntry{
			MerchantID:  merchant.ID,
			Action:      entities.HistoryActionAutoVerified,
			PerformedBy: actorID,
			Notes:       "document requirements bypassed: " + reason,
		}
		if err := u.historyRepo.Append(ctx, bypass); err != nil {
			return nil, err
		}
		if u.metrics != nil {
			u.metrics.VerificationsTotal.WithLabelValues("auto").Inc()
		}
	}

	u.notifier.Send(ctx, notifier.Event{
		Recipient:   merchant.Email,
		TemplateKey: notifier.TemplateSetupCredentials,
		Params: map[string]string{
			"businessName": merchant.BusinessName,
			"setupToken":   token,
			"expiresAt":    expiresAt.Format(time.RFC3339),
		},
	})

	if u.metrics != nil {
		u.metrics.MerchantsCreatedTotal.WithLabelValues("admin").Inc()
	}

	return &ProvisioningResult{
		Merchant:            merchant,
		SetupToken:          token,
		SetupTokenExpiresAt: expiresAt,
	}, nil
}

// Register self-registers a merchant. The account starts directly in
// account_setup since the merchant sets their own password at signup.
func (u *ProvisioningUsecase) Register(ctx context.Context, input *entities.MerchantProfileInput, password string) (*entities.Merchant, error) {
	if missing := missingRequiredFields(input); len(missing) > 0 {
		return nil, domainerrors.Validation("required profile fields missing", missing)
	}
	if len(password) < 8 {
		return nil, domainerrors.Validation("password must be at least 8 characters", []string{"password"})
	}

	if existing, err := u.merchantRepo.GetByEmail(ctx, input.Email); err != nil && err != domainerrors.ErrNotFound {
		return nil, err
	} else if existing != nil {
		return nil, domainerrors.BadRequest("a merchant with this email already exists")
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	merchant := newMerchantFromInput(input)
	merchant.OnboardingStatus = entities.OnboardingAccountSetup
	merchant.IsActive = true
	merchant.PasswordHash = hash
	merchant.AccountSetupAt.SetValid(time.Now())
	merchant.ProfileCompleteness = CalculateProfileCompleteness(merchant)

	if err := u.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, err
	}

	entry := &entities.VerificationHistoryEntry{
		MerchantID:  merchant.ID,
		Action:      entities.HistoryActionAccountSetup,
		PerformedBy: merchant.ID,
		Notes:       "self-registered",
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if u.metrics != nil {
		u.metrics.MerchantsCreatedTotal.WithLabelValues("self").Inc()
		u.metrics.OnboardingTransitions.WithLabelValues(string(entities.OnboardingAccountSetup)).Inc()
	}

	return merchant, nil
}

// GetSetupInfo returns the setup page metadata for a token, or
// ErrNotFound/TokenExpired for unknown or stale tokens.
func (u *ProvisioningUsecase) GetSetupInfo(ctx context.Context, token string) (*SetupInfo, error) {
	merchant, err := u.merchantRepo.GetBySetupToken(ctx, token)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("setup link not found")
		}
		return nil, err
	}

	if u.tokenExpired(merchant) {
		return nil, domainerrors.TokenExpired("setup link has expired")
	}

	return &SetupInfo{
		BusinessName: merchant.BusinessName,
		Email:        merchant.Email,
		ExpiresAt:    merchant.SetupTokenExpiresAt.Time,
	}, nil
}

// CompleteSetup redeems a setup token: sets the merchant password, clears the
// token and advances onboarding to account_setup. The expiry check runs even
// when the token string matches.
func (u *ProvisioningUsecase) CompleteSetup(ctx context.Context, token, password string) (*entities.Merchant, error) {
	if token == "" {
		return nil, domainerrors.TokenInvalid("setup token is required")
	}
	if len(password) < 8 {
		return nil, domainerrors.Validation("password must be at least 8 characters", []string{"password"})
	}

	merchant, err := u.merchantRepo.GetBySetupToken(ctx, token)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.TokenInvalid("setup token is invalid")
		}
		return nil, err
	}

	if u.tokenExpired(merchant) {
		return nil, domainerrors.TokenExpired("setup token has expired")
	}
	if merchant.OnboardingStatus != entities.OnboardingCredentialsSent &&
		merchant.OnboardingStatus != entities.OnboardingCompleted {
		return nil, domainerrors.TokenInvalid("setup already completed")
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	merchant.PasswordHash = hash
	merchant.SetupToken = ""
	merchant.SetupTokenExpiresAt.Valid = false
	merchant.AccountSetupAt.SetValid(time.Now())
	if merchant.OnboardingStatus == entities.OnboardingCredentialsSent {
		merchant.OnboardingStatus = entities.OnboardingAccountSetup
	}

	if err := u.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}

	entry := &entities.VerificationHistoryEntry{
		MerchantID:  merchant.ID,
		Action:      entities.HistoryActionAccountSetup,
		PerformedBy: merchant.ID,
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if u.metrics != nil {
		u.metrics.OnboardingTransitions.WithLabelValues(string(entities.OnboardingAccountSetup)).Inc()
	}

	return merchant, nil
}

// UpdateProfile applies a profile edit and recomputes completeness before the
// write commits, so no reader ever observes a stale score.
func (u *ProvisioningUsecase) UpdateProfile(ctx context.Context, merchantID uuid.UUID, input *entities.MerchantProfileInput) (*entities.Merchant, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if missing := missingRequiredFields(input); len(missing) > 0 {
		return nil, domainerrors.Validation("required profile fields missing", missing)
	}

	applyInput(merchant, input)

	docs, err := u.documentRepo.ListActiveForMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	merchant.ProfileCompleteness = CalculateProfileCompleteness(merchant)
	merchant.DocumentsCompleteness = CalculateDocumentsCompleteness(docs)

	if err := u.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}

func (u *ProvisioningUsecase) tokenExpired(m *entities.Merchant) bool {
	return !m.SetupTokenExpiresAt.Valid || time.Now().After(m.SetupTokenExpiresAt.Time)
}

func missingRequiredFields(input *entities.MerchantProfileInput) []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("businessName", input.BusinessName)
	check("email", input.Email)
	check("phone", input.Phone)
	check("businessType", string(input.BusinessType))
	check("description", input.Description)
	check("address", input.Address)
	check("location", input.Location)
	return missing
}

func newMerchantFromInput(input *entities.MerchantProfileInput) *entities.Merchant {
	m := &entities.Merchant{}
	applyInput(m, input)
	return m
}

func applyInput(m *entities.Merchant, input *entities.MerchantProfileInput) {
	m.BusinessName = input.BusinessName
	m.Email = input.Email
	m.Phone = input.Phone
	m.BusinessType = input.BusinessType
	m.Description = input.Description
	m.Address = input.Address
	m.Location = input.Location

	if input.Website != "" {
		m.Website.SetValid(input.Website)
	}
	if input.YearEstablished != 0 {
		m.YearEstablished.SetValid(int64(input.YearEstablished))
	}
	if input.LogoLocator != "" {
		m.LogoLocator.SetValid(input.LogoLocator)
	}
	if input.BusinessHours != "" {
		m.BusinessHours.SetValid(input.BusinessHours)
	}
}
