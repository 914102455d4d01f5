package models

import (
	"database/sql"
	"time"
)

// User is the persisted row of the users table.
type User struct {
	UserID       string         `db:"user_id"`
	UserName     string         `db:"user_name"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	PasswordHash string         `db:"password_hash"`
	Avatar       string         `db:"avatar"`
	CoverImage   sql.NullString `db:"cover_image"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
