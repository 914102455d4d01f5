package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// AccessTokenCookieName and RefreshTokenCookieName name the session cookies.
const (
	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
)

// AuthMiddleware creates a Gin middleware handler that validates access tokens.
// The token is read from the access token cookie or, failing that, from a Bearer Authorization header.
func AuthMiddleware(tokenService portssvc.TokenSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromContext(c)

		tokenString := accessTokenFromRequest(c)
		if tokenString == "" {
			logger.Warn("Access token missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized request"})
			return
		}

		claims, err := tokenService.VerifyAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Invalid access token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}

		SetUserID(c, claims.UserID)
		SetLogger(c, logger.With(slog.String("user_id", claims.UserID)))

		c.Next()
	}
}

func accessTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
