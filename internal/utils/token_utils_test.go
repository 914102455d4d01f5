package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseHS256(t *testing.T) {
	now := time.Now()
	claims := AccessTokenClaims{
		UserName:         "alice",
		Email:            "alice@example.com",
		RegisteredClaims: NewRegisteredClaims("user-1", "issuer", "", now, time.Hour),
	}
	token, err := SignHS256(claims, "secret")
	require.NoError(t, err)

	var parsed AccessTokenClaims
	require.NoError(t, ParseHS256(token, &parsed, "secret", "issuer", nil))
	assert.Equal(t, "user-1", parsed.Subject)
	assert.Equal(t, "alice", parsed.UserName)
	assert.Equal(t, "alice@example.com", parsed.Email)
}

func TestParseHS256_Rejections(t *testing.T) {
	now := time.Now()
	valid, err := SignHS256(RefreshTokenClaims{NewRegisteredClaims("user-1", "issuer", "jti", now, time.Hour)}, "secret")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		assert.Error(t, ParseHS256(valid, &RefreshTokenClaims{}, "other", "issuer", nil))
	})
	t.Run("wrong issuer", func(t *testing.T) {
		assert.Error(t, ParseHS256(valid, &RefreshTokenClaims{}, "secret", "someone-else", nil))
	})
	t.Run("expired", func(t *testing.T) {
		later := func() time.Time { return now.Add(2 * time.Hour) }
		assert.ErrorIs(t, ParseHS256(valid, &RefreshTokenClaims{}, "secret", "issuer", later), jwt.ErrTokenExpired)
	})
	t.Run("garbage", func(t *testing.T) {
		assert.Error(t, ParseHS256("not-a-jwt", &RefreshTokenClaims{}, "secret", "issuer", nil))
	})
	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, RefreshTokenClaims{NewRegisteredClaims("user-1", "issuer", "jti", now, time.Hour)})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		assert.Error(t, ParseHS256(raw, &RefreshTokenClaims{}, "secret", "issuer", nil))
	})
	t.Run("missing expiry", func(t *testing.T) {
		claims := RefreshTokenClaims{NewRegisteredClaims("user-1", "issuer", "jti", now, time.Hour)}
		claims.ExpiresAt = nil
		raw, err := SignHS256(claims, "secret")
		require.NoError(t, err)
		assert.ErrorIs(t, ParseHS256(raw, &RefreshTokenClaims{}, "secret", "issuer", nil), jwt.ErrTokenRequiredClaimMissing)
	})
}
