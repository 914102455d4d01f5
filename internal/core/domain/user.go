package domain

import "time"

// User represents an account holder in the domain.
type User struct {
	UserID       string `json:"userID"`
	UserName     string `json:"userName"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"`
	Avatar       string `json:"avatar"`
	CoverImage   string `json:"coverImage"`

	// Single live refresh token of the user, stored as a SHA-256 digest. Empty when no session is active.
	RefreshTokenHash      string     `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicUser is the view of a User that is safe to hand to clients.
type PublicUser struct {
	UserID     string    `json:"userID"`
	UserName   string    `json:"userName"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public strips the password hash and refresh token fields.
func (u User) Public() PublicUser {
	return PublicUser{
		UserID:     u.UserID,
		UserName:   u.UserName,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// HasActiveSession reports whether a refresh token is currently stored for the user.
func (u User) HasActiveSession() bool {
	return u.RefreshTokenHash != ""
}
