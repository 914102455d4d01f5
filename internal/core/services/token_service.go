package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/SscSPs/user_accounts_backend/internal/utils"
	"github.com/google/uuid"
)

// tokenService implements the TokenSvcFacade using HS256 JWTs.
// Access and refresh tokens are signed with independent secrets.
type tokenService struct {
	BaseService
	accessSecret  string
	accessExpiry  time.Duration
	refreshSecret string
	refreshExpiry time.Duration
	issuer        string
}

// TokenServiceOption is a functional option for configuring the token service
type TokenServiceOption func(*tokenService)

// WithTokenClock overrides the time source used for issuing and verifying tokens.
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(s *tokenService) {
		s.Clock = now
	}
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, options ...TokenServiceOption) portssvc.TokenSvcFacade {
	svc := &tokenService{
		accessSecret:  cfg.AccessTokenSecret,
		accessExpiry:  cfg.AccessTokenExpiry,
		refreshSecret: cfg.RefreshTokenSecret,
		refreshExpiry: cfg.RefreshTokenExpiry,
		issuer:        cfg.JWTIssuer,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueAccessToken creates a new JWT access token for the given user.
func (s *tokenService) IssueAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := s.Now()
	claims := utils.AccessTokenClaims{
		UserName:         user.UserName,
		Email:            user.Email,
		RegisteredClaims: utils.NewRegisteredClaims(user.UserID, s.issuer, "", now, s.accessExpiry),
	}
	token, err := utils.SignHS256(claims, s.accessSecret)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// IssueRefreshToken creates a new JWT refresh token for the given user.
// Every token carries a fresh random ID so two tokens issued in the same second still differ.
func (s *tokenService) IssueRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := s.Now()
	claims := utils.RefreshTokenClaims{
		RegisteredClaims: utils.NewRegisteredClaims(user.UserID, s.issuer, uuid.NewString(), now, s.refreshExpiry),
	}
	token, err := utils.SignHS256(claims, s.refreshSecret)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// VerifyAccessToken checks signature, algorithm, issuer and expiry of an access token.
func (s *tokenService) VerifyAccessToken(ctx context.Context, token string) (*domain.AccessClaims, error) {
	var claims utils.AccessTokenClaims
	if err := utils.ParseHS256(token, &claims, s.accessSecret, s.issuer, s.Now); err != nil {
		s.LogDebug(ctx, "Access token rejected", slog.String("reason", err.Error()))
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return &domain.AccessClaims{
		UserID:   claims.Subject,
		UserName: claims.UserName,
		Email:    claims.Email,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}

// VerifyRefreshToken checks signature, algorithm, issuer and expiry of a refresh token.
// Whether the token is still the user's live one is decided by the caller.
func (s *tokenService) VerifyRefreshToken(ctx context.Context, token string) (*domain.RefreshClaims, error) {
	var claims utils.RefreshTokenClaims
	if err := utils.ParseHS256(token, &claims, s.refreshSecret, s.issuer, s.Now); err != nil {
		s.LogDebug(ctx, "Refresh token rejected", slog.String("reason", err.Error()))
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return &domain.RefreshClaims{
		UserID:   claims.Subject,
		TokenID:  claims.ID,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}
