// Package memory provides an in-process credential store with the same contract as the Postgres one.
// Data is lost on restart.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/user_accounts_backend/internal/core/ports/repositories"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// NewRepositoryProvider returns a provider backed entirely by memory.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{UserRepo: NewUserRepository()}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

// clone copies the pointer fields so callers never share state with the store.
func clone(u domain.User) *domain.User {
	if u.RefreshTokenExpiresAt != nil {
		t := *u.RefreshTokenExpiresAt
		u.RefreshTokenExpiresAt = &t
	}
	return &u
}

// conflictLocked reports whether userName or email is used by a user other than exceptID.
// Callers hold mu.
func (r *UserRepository) conflictLocked(exceptID, userName, email string) bool {
	for id, u := range r.users {
		if id == exceptID {
			continue
		}
		if userName != "" && strings.EqualFold(u.UserName, userName) {
			return true
		}
		if email != "" && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserID]; ok {
		return apperrors.ErrDuplicate
	}
	if r.conflictLocked("", user.UserName, user.Email) {
		return apperrors.ErrDuplicate
	}
	r.users[user.UserID] = *clone(user)
	return nil
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) FindUserByUsernameOrEmail(_ context.Context, userName, email string) (*domain.User, error) {
	if userName == "" && email == "" {
		return nil, apperrors.ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *domain.User
	for _, u := range r.users {
		matches := (userName != "" && strings.EqualFold(u.UserName, userName)) ||
			(email != "" && strings.EqualFold(u.Email, email))
		if matches && (found == nil || u.CreatedAt.Before(found.CreatedAt)) {
			found = clone(u)
		}
	}
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

// update applies fn to the stored user under the write lock.
func (r *UserRepository) update(userID string, fn func(u *domain.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}
	r.users[userID] = u
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, userID string, passwordHash string, clearRefreshToken bool, updatedAt time.Time) error {
	return r.update(userID, func(u *domain.User) error {
		u.PasswordHash = passwordHash
		u.UpdatedAt = updatedAt
		if clearRefreshToken {
			u.RefreshTokenHash = ""
			u.RefreshTokenExpiresAt = nil
		}
		return nil
	})
}

func (r *UserRepository) UpdateAccountDetails(_ context.Context, userID string, fullName string, email string, updatedAt time.Time) error {
	return r.update(userID, func(u *domain.User) error {
		if r.conflictLocked(userID, "", email) {
			return apperrors.ErrDuplicate
		}
		u.FullName = fullName
		u.Email = email
		u.UpdatedAt = updatedAt
		return nil
	})
}

func (r *UserRepository) UpdateAvatar(_ context.Context, userID string, avatarURL string, updatedAt time.Time) error {
	return r.update(userID, func(u *domain.User) error {
		u.Avatar = avatarURL
		u.UpdatedAt = updatedAt
		return nil
	})
}

func (r *UserRepository) UpdateCoverImage(_ context.Context, userID string, coverImageURL string, updatedAt time.Time) error {
	return r.update(userID, func(u *domain.User) error {
		u.CoverImage = coverImageURL
		u.UpdatedAt = updatedAt
		return nil
	})
}

func (r *UserRepository) SetRefreshToken(_ context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	return r.update(userID, func(u *domain.User) error {
		u.RefreshTokenHash = refreshTokenHash
		u.RefreshTokenExpiresAt = &expiresAt
		return nil
	})
}

func (r *UserRepository) RotateRefreshToken(_ context.Context, userID string, currentHash string, newHash string, expiresAt time.Time) error {
	err := r.update(userID, func(u *domain.User) error {
		if currentHash == "" || u.RefreshTokenHash != currentHash {
			return apperrors.ErrStaleWrite
		}
		u.RefreshTokenHash = newHash
		u.RefreshTokenExpiresAt = &expiresAt
		return nil
	})
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrStaleWrite
	}
	return err
}

func (r *UserRepository) ClearRefreshToken(_ context.Context, userID string) error {
	return r.update(userID, func(u *domain.User) error {
		u.RefreshTokenHash = ""
		u.RefreshTokenExpiresAt = nil
		return nil
	})
}
