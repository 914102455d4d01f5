package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	// Returns apperrors.ErrNotFound if no such user exists.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves the user matching userName OR email.
	// Empty arguments are ignored. Returns apperrors.ErrNotFound if nothing matches.
	FindUserByUsernameOrEmail(ctx context.Context, userName, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// user name or email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the password hash, optionally clearing the stored refresh token in the same write.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, clearRefreshToken bool, updatedAt time.Time) error

	// UpdateAccountDetails updates the full name and email of a user.
	UpdateAccountDetails(ctx context.Context, userID string, fullName string, email string, updatedAt time.Time) error

	// UpdateAvatar sets the avatar URL.
	UpdateAvatar(ctx context.Context, userID string, avatarURL string, updatedAt time.Time) error

	// UpdateCoverImage sets the cover image URL.
	UpdateCoverImage(ctx context.Context, userID string, coverImageURL string, updatedAt time.Time) error
}

// RefreshTokenStore manages the single refresh token stored on a user record.
// Writes touch only the refresh token columns.
type RefreshTokenStore interface {
	// SetRefreshToken unconditionally stores the refresh token digest, replacing any previous one.
	SetRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error

	// RotateRefreshToken replaces currentHash with newHash only if currentHash is still the stored value.
	// Returns apperrors.ErrStaleWrite when the precondition does not hold.
	RotateRefreshToken(ctx context.Context, userID string, currentHash string, newHash string, expiresAt time.Time) error

	// ClearRefreshToken removes the stored refresh token. Clearing an already empty token is not an error.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	RefreshTokenStore
}
