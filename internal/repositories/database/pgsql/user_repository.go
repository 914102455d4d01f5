package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/user_accounts_backend/internal/core/ports/repositories"
	"github.com/SscSPs/user_accounts_backend/internal/models"
	"github.com/SscSPs/user_accounts_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, user_name, email, full_name, password_hash, avatar, cover_image,
		refresh_token_hash, refresh_token_expiry_time, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.UserName,
		&m.Email,
		&m.FullName,
		&m.PasswordHash,
		&m.Avatar,
		&m.CoverImage,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.UserName,
		m.Email,
		m.FullName,
		m.PasswordHash,
		m.Avatar,
		m.CoverImage,
		m.RefreshTokenHash,
		m.RefreshTokenExpiryTime,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user name or email already taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if !isValidID(userID) {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByUsernameOrEmail(ctx context.Context, userName, email string) (*domain.User, error) {
	if userName == "" && email == "" {
		return nil, apperrors.ErrNotFound
	}
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::text <> '' AND lower(user_name) = lower($1::text))
		   OR ($2::text <> '' AND lower(email) = lower($2::text))
		ORDER BY created_at
		LIMIT 1;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userName, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by user name or email: %w", err)
	}
	return user, nil
}

// updateOne runs a single-row UPDATE keyed by user_id and maps zero affected rows to ErrNotFound.
func (r *PgxUserRepository) updateOne(ctx context.Context, op string, query string, args ...any) error {
	n, err := r.execRowsAffected(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, clearRefreshToken bool, updatedAt time.Time) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}
	query := `
		UPDATE users
		SET password_hash = $2,
		    updated_at = $3,
		    refresh_token_hash = CASE WHEN $4::boolean THEN NULL ELSE refresh_token_hash END,
		    refresh_token_expiry_time = CASE WHEN $4::boolean THEN NULL ELSE refresh_token_expiry_time END
		WHERE user_id = $1;
	`
	return r.updateOne(ctx, "failed to update password", query, userID, passwordHash, updatedAt, clearRefreshToken)
}

func (r *PgxUserRepository) UpdateAccountDetails(ctx context.Context, userID string, fullName string, email string, updatedAt time.Time) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}
	query := `UPDATE users SET full_name = $2, email = $3, updated_at = $4 WHERE user_id = $1;`
	return r.updateOne(ctx, "failed to update account details", query, userID, fullName, email, updatedAt)
}

func (r *PgxUserRepository) UpdateAvatar(ctx context.Context, userID string, avatarURL string, updatedAt time.Time) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}
	query := `UPDATE users SET avatar = $2, updated_at = $3 WHERE user_id = $1;`
	return r.updateOne(ctx, "failed to update avatar", query, userID, avatarURL, updatedAt)
}

func (r *PgxUserRepository) UpdateCoverImage(ctx context.Context, userID string, coverImageURL string, updatedAt time.Time) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}
	query := `UPDATE users SET cover_image = $2, updated_at = $3 WHERE user_id = $1;`
	return r.updateOne(ctx, "failed to update cover image", query, userID, coverImageURL, updatedAt)
}

func (r *PgxUserRepository) SetRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}
	query := `UPDATE users SET refresh_token_hash = $2, refresh_token_expiry_time = $3 WHERE user_id = $1;`
	return r.updateOne(ctx, "failed to set refresh token", query, userID, refreshTokenHash, expiresAt)
}

// RotateRefreshToken only writes when currentHash is still stored, so of several
// concurrent rotations with the same token exactly one succeeds.
func (r *PgxUserRepository) RotateRefreshToken(ctx context.Context, userID string, currentHash string, newHash string, expiresAt time.Time) error {
	if !isValidID(userID) || currentHash == "" {
		return apperrors.ErrStaleWrite
	}
	query := `
		UPDATE users
		SET refresh_token_hash = $3, refresh_token_expiry_time = $4
		WHERE user_id = $1 AND refresh_token_hash = $2;
	`
	n, err := r.execRowsAffected(ctx, query, userID, currentHash, newHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if n == 0 {
		return apperrors.ErrStaleWrite
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}
	query := `UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL WHERE user_id = $1;`
	return r.updateOne(ctx, "failed to clear refresh token", query, userID)
}
