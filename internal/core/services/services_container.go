package services

import (
	portsrepo "github.com/SscSPs/user_accounts_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/SscSPs/user_accounts_backend/internal/core/ports/storage"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, objectStorage storage.ObjectStorage) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(
		repos.UserRepo,
		container.Token,
		objectStorage,
		WithPasswordHashCost(cfg.PasswordHashCost),
		WithSessionRevocationOnPasswordChange(cfg.RevokeSessionOnPasswordChange),
	)
	container.User = NewUserService(repos.UserRepo, objectStorage)

	return container
}
