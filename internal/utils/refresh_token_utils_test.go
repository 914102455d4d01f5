package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashRefreshToken(t *testing.T) {
	a := HashRefreshToken("token-a")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashRefreshToken("token-a"))
	assert.NotEqual(t, a, HashRefreshToken("token-b"))
}

func TestCompareRefreshTokenHash(t *testing.T) {
	stored := HashRefreshToken("token-a")

	assert.True(t, CompareRefreshTokenHash("token-a", stored))
	assert.False(t, CompareRefreshTokenHash("token-b", stored))
	assert.False(t, CompareRefreshTokenHash("", ""))
	assert.False(t, CompareRefreshTokenHash("token-a", ""))
}
