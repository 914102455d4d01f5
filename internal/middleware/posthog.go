package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/user_accounts_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware records one analytics event per successful authenticated request.
// Events are named after the route template, e.g. "/api/v1/users/avatar" becomes "api_v1_users_avatar".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		posthogClient.Enqueue(userID, eventName, map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		})
	}
}

// PosthogEvent sends a custom event for distinctID, e.g. a registration that has no authenticated user yet.
func PosthogEvent(posthogClient *utils.PosthogClientWrapper, distinctID string, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() || distinctID == "" {
		return
	}
	posthogClient.Enqueue(distinctID, eventName, properties)
}
