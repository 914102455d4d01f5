package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	"github.com/SscSPs/user_accounts_backend/internal/middleware"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// cookieWriter sets and clears the session cookies. All cookies are HttpOnly and SameSite=Lax.
type cookieWriter struct {
	secure bool
	domain string
}

func newCookieWriter(cfg *config.Config) cookieWriter {
	return cookieWriter{secure: cfg.CookieSecure, domain: cfg.CookieDomain}
}

func (w cookieWriter) set(c *gin.Context, name, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", w.domain, w.secure, true)
}

func (w cookieWriter) setSession(c *gin.Context, pair domain.TokenPair) {
	w.set(c, middleware.AccessTokenCookieName, pair.AccessToken, pair.AccessTokenExpiresAt)
	w.set(c, middleware.RefreshTokenCookieName, pair.RefreshToken, pair.RefreshTokenExpiresAt)
}

func (w cookieWriter) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookieName, "", -1, "/", w.domain, w.secure, true)
	c.SetCookie(middleware.RefreshTokenCookieName, "", -1, "/", w.domain, w.secure, true)
}
