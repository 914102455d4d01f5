package services

import (
	"context"

	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	"github.com/SscSPs/user_accounts_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.PublicUser, error)
}

// UserProfileSvc defines profile update operations
type UserProfileSvc interface {
	// UpdateAccountDetails changes the full name and email of a user.
	UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.PublicUser, error)

	// UpdateAvatar uploads the file at localPath and stores its URL as the avatar.
	UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.PublicUser, error)

	// UpdateCoverImage uploads the file at localPath and stores its URL as the cover image.
	UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.PublicUser, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserProfileSvc
}
