package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/user_accounts_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/SscSPs/user_accounts_backend/internal/core/ports/storage"
	"github.com/SscSPs/user_accounts_backend/internal/dto"
	"github.com/SscSPs/user_accounts_backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const (
	msgInvalidCredentials  = "invalid user credentials"
	msgUnauthorizedRequest = "unauthorized request"
	msgInvalidRefreshToken = "invalid refresh token"
	msgRefreshTokenUsed    = "refresh token is expired or used"
	msgUserAlreadyExists   = "user with email or username already exists"
)

// authService implements the AuthSvcFacade: registration, login, token rotation,
// logout and password changes.
type authService struct {
	BaseService
	userRepo      portsrepo.UserRepositoryFacade
	tokenService  portssvc.TokenSvcFacade
	objectStorage storage.ObjectStorage

	passwordHashCost              int
	revokeSessionOnPasswordChange bool

	// Hash compared against when the login identifier matches no user,
	// so both failure paths pay for one bcrypt comparison.
	dummyHashOnce sync.Once
	dummyHash     string
}

// AuthServiceOption is a functional option for configuring the auth service
type AuthServiceOption func(*authService)

// WithPasswordHashCost sets the bcrypt cost used for new password hashes.
func WithPasswordHashCost(cost int) AuthServiceOption {
	return func(s *authService) {
		s.passwordHashCost = cost
	}
}

// WithSessionRevocationOnPasswordChange controls whether ChangePassword clears the stored refresh token.
func WithSessionRevocationOnPasswordChange(revoke bool) AuthServiceOption {
	return func(s *authService) {
		s.revokeSessionOnPasswordChange = revoke
	}
}

// WithAuthClock overrides the time source used for timestamps.
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		s.Clock = now
	}
}

// NewAuthService creates a new auth service with the provided options
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	tokenService portssvc.TokenSvcFacade,
	objectStorage storage.ObjectStorage,
	options ...AuthServiceOption,
) portssvc.AuthSvcFacade {
	svc := &authService{
		userRepo:                      userRepo,
		tokenService:                  tokenService,
		objectStorage:                 objectStorage,
		passwordHashCost:              bcrypt.DefaultCost,
		revokeSessionOnPasswordChange: true,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func normalizeUserName(userName string) string {
	return strings.ToLower(strings.TrimSpace(userName))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the request, uploads the avatar and optional cover image in parallel
// and persists the new user.
func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest, uploads dto.RegisterUploads) (*domain.PublicUser, error) {
	req.UserName = normalizeUserName(req.UserName)
	req.Email = normalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(uploads.AvatarPath) == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "avatar file is required")
	}

	existing, err := s.userRepo.FindUserByUsernameOrEmail(ctx, req.UserName, req.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.New(apperrors.ErrDuplicate, msgUserAlreadyExists)
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for existing user", slog.String("user_name", req.UserName))
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	avatarURL, coverImageURL, err := s.uploadProfileMedia(ctx, uploads)
	if err != nil {
		s.LogError(ctx, err, "Failed to upload registration media", slog.String("user_name", req.UserName))
		return nil, apperrors.Wrap(apperrors.ErrDependency, "failed to upload avatar or cover image", err)
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		UserName:     req.UserName,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
		Avatar:       avatarURL,
		CoverImage:   coverImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicate, msgUserAlreadyExists, err)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("user_name", req.UserName))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	public := user.Public()
	return &public, nil
}

// uploadProfileMedia uploads the avatar and, if present, the cover image concurrently.
// Both uploads finish before it returns.
func (s *authService) uploadProfileMedia(ctx context.Context, uploads dto.RegisterUploads) (string, string, error) {
	var avatarURL, coverImageURL string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.objectStorage.Upload(gctx, uploads.AvatarPath)
		if err != nil {
			return fmt.Errorf("avatar upload: %w", err)
		}
		if url == "" {
			return errors.New("avatar upload returned an empty URL")
		}
		avatarURL = url
		return nil
	})
	if strings.TrimSpace(uploads.CoverImagePath) != "" {
		g.Go(func() error {
			url, err := s.objectStorage.Upload(gctx, uploads.CoverImagePath)
			if err != nil {
				return fmt.Errorf("cover image upload: %w", err)
			}
			coverImageURL = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return avatarURL, coverImageURL, nil
}

func (s *authService) hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password, s.passwordHashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.Wrap(apperrors.ErrValidation, "password is too long", err)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func (s *authService) compareAgainstDummyHash(password string) {
	s.dummyHashOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword(uuid.NewString(), s.passwordHashCost)
	})
	_ = utils.CheckPasswordHash(password, s.dummyHash)
}

// Login verifies credentials and starts a new session. Any previously stored refresh token is replaced.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.LoginResult, error) {
	userName := normalizeUserName(req.UserName)
	email := normalizeEmail(req.Email)
	if userName == "" && email == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "username or email is required")
	}
	if req.Password == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "password is required")
	}

	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, userName, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.compareAgainstDummyHash(req.Password)
			s.LogInfo(ctx, "Login failed: unknown user")
			return nil, apperrors.New(apperrors.ErrUnauthorized, msgInvalidCredentials)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "Login failed: wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.New(apperrors.ErrUnauthorized, msgInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.UserID, utils.HashRefreshToken(pair.RefreshToken), pair.RefreshTokenExpiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &domain.LoginResult{TokenPair: *pair, User: user.Public()}, nil
}

// Refresh verifies the presented refresh token, checks it is the user's live token and rotates it.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, apperrors.New(apperrors.ErrUnauthorized, msgUnauthorizedRequest)
	}

	claims, err := s.tokenService.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, msgInvalidRefreshToken, err)
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, msgInvalidRefreshToken, err)
		}
		s.LogError(ctx, err, "Failed to load user for token refresh", slog.String("user_id", claims.UserID))
		return nil, fmt.Errorf("failed to load user for token refresh: %w", err)
	}

	if !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		s.LogWarn(ctx, "Refresh token does not match the stored token",
			slog.String("user_id", user.UserID),
			slog.Bool("has_active_session", user.HasActiveSession()))
		return nil, apperrors.New(apperrors.ErrUnauthorized, msgRefreshTokenUsed)
	}
	if user.RefreshTokenExpiresAt != nil && !s.Now().Before(*user.RefreshTokenExpiresAt) {
		return nil, apperrors.New(apperrors.ErrUnauthorized, msgRefreshTokenUsed)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	err = s.userRepo.RotateRefreshToken(ctx, user.UserID, user.RefreshTokenHash, utils.HashRefreshToken(pair.RefreshToken), pair.RefreshTokenExpiresAt)
	if err != nil {
		if errors.Is(err, apperrors.ErrStaleWrite) || errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Refresh token rotated concurrently", slog.String("user_id", user.UserID))
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, msgRefreshTokenUsed, err)
		}
		s.LogError(ctx, err, "Failed to rotate refresh token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	s.LogDebug(ctx, "Refresh token rotated", slog.String("user_id", user.UserID))
	return pair, nil
}

// Logout clears the stored refresh token. Logging out twice is not an error.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return userLookupError(err, "failed to clear refresh token")
	}
	s.LogInfo(ctx, "User logged out", slog.String("user_id", userID))
	return nil
}

// ChangePassword replaces the password hash after checking the old password.
func (s *authService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) (bool, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return false, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, userLookupError(err, "failed to load user for password change")
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		s.LogInfo(ctx, "Password change rejected: incorrect old password", slog.String("user_id", userID))
		return false, apperrors.New(apperrors.ErrUnauthorized, "incorrect old password")
	}

	newHash, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return false, err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newHash, s.revokeSessionOnPasswordChange, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", userID))
		return false, userLookupError(err, "failed to update password")
	}

	s.LogInfo(ctx, "Password changed",
		slog.String("user_id", userID),
		slog.Bool("session_revoked", s.revokeSessionOnPasswordChange))
	return s.revokeSessionOnPasswordChange, nil
}

// GetCurrentUser returns the public view of the user.
func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err, "failed to get current user")
	}
	public := user.Public()
	return &public, nil
}

func (s *authService) issueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, accessExpiresAt, err := s.tokenService.IssueAccessToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.tokenService.IssueRefreshToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return &domain.TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}
