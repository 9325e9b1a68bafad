package usecases

import (
	"context"

	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/domain/repositories"
	"vendor-hub.backend/pkg/crypto"
	"vendor-hub.backend/pkg/jwt"
)

// LoginResult carries the issued token pair and the authenticated role
type LoginResult struct {
	Tokens *jwt.TokenPair `json:"tokens"`
	Role   string         `json:"role"`
}

// AuthUsecase authenticates admin users and merchants. Merchants authenticate
// against the password they set during account setup.
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	merchantRepo repositories.MerchantRepository
	jwtService   *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	merchantRepo repositories.MerchantRepository,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		merchantRepo: merchantRepo,
		jwtService:   jwtService,
	}
}

// Login authenticates by email and password. Platform users are checked
// first, then merchant accounts.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if !crypto.CheckPassword(password, user.PasswordHash) {
			return nil, domainerrors.Unauthorized("invalid credentials")
		}
		tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
		if err != nil {
			return nil, err
		}
		return &LoginResult{Tokens: tokens, Role: string(user.Role)}, nil
	}
	if err != domainerrors.ErrNotFound {
		return nil, err
	}

	merchant, err := u.merchantRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if merchant.PasswordHash == "" || !crypto.CheckPassword(password, merchant.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid credentials")
	}
	if !merchant.IsActive {
		return nil, domainerrors.Forbidden("merchant account is deactivated")
	}

	tokens, err := u.jwtService.GenerateTokenPair(merchant.ID, merchant.Email, "merchant")
	if err != nil {
		return nil, err
	}
	return &LoginResult{Tokens: tokens, Role: "merchant"}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}
	return u.jwtService.GenerateTokenPair(claims.UserID, claims.Email, claims.Role)
}
