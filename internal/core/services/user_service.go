package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/user_accounts_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/SscSPs/user_accounts_backend/internal/core/ports/storage"
	"github.com/SscSPs/user_accounts_backend/internal/dto"
	"github.com/SscSPs/user_accounts_backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo      portsrepo.UserRepositoryFacade
	objectStorage storage.ObjectStorage
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithUserClock overrides the time source used for timestamps.
func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.Clock = now
	}
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, objectStorage storage.ObjectStorage, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:      userRepo,
		objectStorage: objectStorage,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err, "failed to get user by ID in service")
	}
	public := user.Public()
	return &public, nil
}

// UpdateAccountDetails changes full name and email. The new email must not belong to another user.
func (s *userService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.PublicUser, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = normalizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindUserByUsernameOrEmail(ctx, "", req.Email)
	switch {
	case err == nil && owner.UserID != userID:
		return nil, apperrors.New(apperrors.ErrDuplicate, "email is already in use")
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check email availability", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	if err := s.userRepo.UpdateAccountDetails(ctx, userID, req.FullName, req.Email, s.Now()); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicate, "email is already in use", err)
		}
		s.LogError(ctx, err, "Failed to update account details", slog.String("user_id", userID))
		return nil, userLookupError(err, "failed to update account details")
	}

	s.LogInfo(ctx, "Account details updated", slog.String("user_id", userID))
	return s.GetUserByID(ctx, userID)
}

// UpdateAvatar uploads a new avatar and stores its URL.
func (s *userService) UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.PublicUser, error) {
	url, err := s.uploadImage(ctx, userID, localPath, "avatar")
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateAvatar(ctx, userID, url, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to store avatar URL", slog.String("user_id", userID))
		return nil, userLookupError(err, "failed to update avatar")
	}
	return s.GetUserByID(ctx, userID)
}

// UpdateCoverImage uploads a new cover image and stores its URL.
func (s *userService) UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.PublicUser, error) {
	url, err := s.uploadImage(ctx, userID, localPath, "cover image")
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateCoverImage(ctx, userID, url, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to store cover image URL", slog.String("user_id", userID))
		return nil, userLookupError(err, "failed to update cover image")
	}
	return s.GetUserByID(ctx, userID)
}

func (s *userService) uploadImage(ctx context.Context, userID, localPath, kind string) (string, error) {
	if strings.TrimSpace(localPath) == "" {
		return "", apperrors.New(apperrors.ErrValidation, kind+" file is missing")
	}
	url, err := s.objectStorage.Upload(ctx, localPath)
	if err == nil && url == "" {
		err = errors.New("upload returned an empty URL")
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to upload "+kind, slog.String("user_id", userID))
		return "", apperrors.Wrap(apperrors.ErrDependency, "error while uploading "+kind, err)
	}
	return url, nil
}
