package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	RotateRefreshTokenFn func(ctx context.Context, userID, currentHash, newHash string, expiresAt time.Time) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsernameOrEmail(ctx context.Context, userName, email string) (*domain.User, error) {
	args := m.Called(ctx, userName, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, clearRefreshToken bool, updatedAt time.Time) error {
	args := m.Called(ctx, userID, passwordHash, clearRefreshToken, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAccountDetails(ctx context.Context, userID string, fullName string, email string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, fullName, email, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, userID string, avatarURL string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, avatarURL, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCoverImage(ctx context.Context, userID string, coverImageURL string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, coverImageURL, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) RotateRefreshToken(ctx context.Context, userID string, currentHash string, newHash string, expiresAt time.Time) error {
	if m.RotateRefreshTokenFn != nil {
		return m.RotateRefreshTokenFn(ctx, userID, currentHash, newHash, expiresAt)
	}
	args := m.Called(ctx, userID, currentHash, newHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock ObjectStorage ---
type MockObjectStorage struct {
	mock.Mock
	UploadFn func(ctx context.Context, localPath string) (string, error)
}

func (m *MockObjectStorage) Upload(ctx context.Context, localPath string) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, localPath)
	}
	args := m.Called(ctx, localPath)
	return args.String(0), args.Error(1)
}

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) IssueRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) VerifyAccessToken(ctx context.Context, token string) (*domain.AccessClaims, error) {
	args := m.Called(ctx, token)
	var claims *domain.AccessClaims
	if args.Get(0) != nil {
		claims = args.Get(0).(*domain.AccessClaims)
	}
	return claims, args.Error(1)
}

func (m *MockTokenService) VerifyRefreshToken(ctx context.Context, token string) (*domain.RefreshClaims, error) {
	args := m.Called(ctx, token)
	var claims *domain.RefreshClaims
	if args.Get(0) != nil {
		claims = args.Get(0).(*domain.RefreshClaims)
	}
	return claims, args.Error(1)
}
