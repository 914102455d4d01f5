package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/SscSPs/user_accounts_backend/internal/dto"
	"github.com/SscSPs/user_accounts_backend/internal/middleware"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/SscSPs/user_accounts_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, login and session endpoints.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	cookies     cookieWriter
	uploads     uploadSaver
	posthog     *utils.PosthogClientWrapper
}

func newAuthHandler(authService portssvc.AuthSvcFacade, cfg *config.Config, posthog *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{
		authService: authService,
		cookies:     newCookieWriter(cfg),
		uploads:     newUploadSaver(cfg),
		posthog:     posthog,
	}
}

// registerAuthRoutes sets up the public and authenticated session routes under users.
func registerAuthRoutes(public, protected *gin.RouterGroup, cfg *config.Config, authService portssvc.AuthSvcFacade, posthog *utils.PosthogClientWrapper) {
	h := newAuthHandler(authService, cfg, posthog)

	public.POST("/register", h.register)
	public.POST("/login", h.login)
	public.POST("/refresh-token", h.refreshToken)

	protected.POST("/logout", h.logout)
	protected.POST("/change-password", h.changePassword)
	protected.GET("/current-user", h.currentUser)
}

// register godoc
// @Summary Register a new user
// @Description Creates an account. The avatar is required, the cover image optional.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param userName formData string true "User name"
// @Param email formData string true "Email"
// @Param fullName formData string true "Full name"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	avatarPath, err := h.uploads.save(c, "avatar")
	defer h.uploads.remove(c, avatarPath)
	if err != nil {
		respondError(c, err, "Failed to receive avatar")
		return
	}
	coverImagePath, err := h.uploads.save(c, "coverImage")
	defer h.uploads.remove(c, coverImagePath)
	if err != nil {
		respondError(c, err, "Failed to receive cover image")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req, dto.RegisterUploads{
		AvatarPath:     avatarPath,
		CoverImagePath: coverImagePath,
	})
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	middleware.PosthogEvent(h.posthog, user.UserID, "user_registered", map[string]any{
		"has_cover_image": user.CoverImage != "",
	})
	middleware.GetLoggerFromContext(c).Info("User registered successfully", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, dto.ToUserResponse(user), "User registered successfully"))
}

// login godoc
// @Summary User login
// @Description Authenticates with user name or email and password. Tokens are set as HttpOnly cookies and returned in the body.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	h.cookies.setSession(c, result.TokenPair)
	middleware.PosthogEvent(h.posthog, result.User.UserID, "user_logged_in", nil)
	c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(&result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "User logged in successfully"))
}

// refreshToken godoc
// @Summary Refresh the session
// @Description Exchanges the refresh token (cookie or body) for a new token pair. The presented token becomes invalid.
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest false "Refresh token when no cookie is sent"
// @Success 200 {object} dto.APIResponse{data=dto.RefreshTokenResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/refresh-token [post]
func (h *authHandler) refreshToken(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookieName)
	if token == "" && c.Request.ContentLength != 0 {
		var body dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&body); err == nil {
			token = body.RefreshToken
		}
	}

	pair, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "Token refresh failed")
		return
	}

	h.cookies.setSession(c, *pair)
	c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed"))
}

// logout godoc
// @Summary Log out
// @Description Revokes the stored refresh token and clears the session cookies.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Logout failed")
		return
	}

	h.cookies.clearSession(c)
	c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, gin.H{}, "User logged out"))
}

// changePassword godoc
// @Summary Change password
// @Description Replaces the password after checking the old one. Depending on configuration the session is revoked.
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/change-password [post]
func (h *authHandler) changePassword(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	revoked, err := h.authService.ChangePassword(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Password change failed")
		return
	}

	if revoked {
		h.cookies.clearSession(c)
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, gin.H{"sessionRevoked": revoked}, "Password changed successfully"))
}

// currentUser godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/current-user [get]
func (h *authHandler) currentUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get current user")
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, dto.ToUserResponse(user), "Current user fetched successfully"))
}
