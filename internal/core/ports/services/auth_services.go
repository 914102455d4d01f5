package services

import (
	"context"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	"github.com/SscSPs/user_accounts_backend/internal/dto"
)

// TokenSvcFacade defines the interface for issuing and verifying JWTs.
type TokenSvcFacade interface {
	// IssueAccessToken signs a short-lived access token for user.
	IssueAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// IssueRefreshToken signs a long-lived refresh token for user with the refresh secret.
	IssueRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// VerifyAccessToken returns apperrors.ErrInvalidToken for any token that does not verify.
	VerifyAccessToken(ctx context.Context, token string) (*domain.AccessClaims, error)
	// VerifyRefreshToken returns apperrors.ErrInvalidToken for any token that does not verify.
	VerifyRefreshToken(ctx context.Context, token string) (*domain.RefreshClaims, error)
}

// SessionSvc covers the credential and session lifecycle.
type SessionSvc interface {
	// Login verifies credentials and starts a new session, replacing any previous one.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.LoginResult, error)
	// Refresh exchanges a live refresh token for a new token pair; the presented token is consumed.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	// Logout clears the stored refresh token. Repeated calls succeed.
	Logout(ctx context.Context, userID string) error
}

// AccountSvc covers registration and credential management.
type AccountSvc interface {
	// Register creates a user after uploading the avatar and optional cover image.
	Register(ctx context.Context, req dto.RegisterUserRequest, uploads dto.RegisterUploads) (*domain.PublicUser, error)
	// ChangePassword replaces the password after checking the old one.
	// It reports whether the session was revoked as part of the change.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) (bool, error)
	// GetCurrentUser returns the public view of userID.
	GetCurrentUser(ctx context.Context, userID string) (*domain.PublicUser, error)
}

// AuthSvcFacade combines all authentication service interfaces
type AuthSvcFacade interface {
	SessionSvc
	AccountSvc
}
