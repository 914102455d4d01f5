package mapping

import (
	"database/sql"

	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	"github.com/SscSPs/user_accounts_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		UserName:     d.UserName,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		Avatar:       d.Avatar,
		CoverImage:   sql.NullString{String: d.CoverImage, Valid: d.CoverImage != ""},
		RefreshTokenHash: sql.NullString{
			String: d.RefreshTokenHash,
			Valid:  d.RefreshTokenHash != "",
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.RefreshTokenExpiresAt != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiresAt, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:           m.UserID,
		UserName:         m.UserName,
		Email:            m.Email,
		FullName:         m.FullName,
		PasswordHash:     m.PasswordHash,
		Avatar:           m.Avatar,
		CoverImage:       m.CoverImage.String,
		RefreshTokenHash: m.RefreshTokenHash.String,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiresAt = &expiry
	}
	return d
}
