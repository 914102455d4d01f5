package domain

import "time"

// TokenPair is a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"-"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"-"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	TokenPair
	User PublicUser `json:"user"`
}

// AccessClaims is the verified content of an access token.
type AccessClaims struct {
	UserID   string
	UserName string
	Email    string
	IssuedAt time.Time
}

// RefreshClaims is the verified content of a refresh token.
type RefreshClaims struct {
	UserID   string
	TokenID  string
	IssuedAt time.Time
}
