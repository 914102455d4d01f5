package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/dto"
	"github.com/SscSPs/user_accounts_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const msgInternal = "Something went wrong"

// statusFor maps an error kind to its HTTP status and default client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized request"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, "resource already exists"
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// respondError writes the single error response for err and logs it at a level matching the status.
func respondError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromContext(c)
	status, fallback := statusFor(err)

	message := fallback
	if status != http.StatusInternalServerError || errors.Is(err, apperrors.ErrDependency) {
		message = apperrors.PublicMessage(err, fallback)
	}

	if status >= http.StatusInternalServerError {
		logger.Error(logMsg, slog.String("error", err.Error()), slog.Int("status", status))
	} else {
		logger.Warn(logMsg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

// respondBadRequest reports a request that could not be bound.
func respondBadRequest(c *gin.Context, err error) {
	respondError(c, apperrors.Wrap(apperrors.ErrValidation, "invalid request format", err), "Failed to bind request")
}

// requireUserID returns the authenticated user ID or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrUnauthorized, "unauthorized request"), "User ID not found in context")
		return "", false
	}
	return userID, true
}
