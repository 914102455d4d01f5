package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/SscSPs/user_accounts_backend/internal/dto"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// userHandler handles profile updates of the authenticated user.
type userHandler struct {
	userService portssvc.UserSvcFacade
	uploads     uploadSaver
}

func newUserHandler(us portssvc.UserSvcFacade, cfg *config.Config) *userHandler {
	return &userHandler{
		userService: us,
		uploads:     newUploadSaver(cfg),
	}
}

// registerUserRoutes registers the profile routes; all of them require authentication.
func registerUserRoutes(protected *gin.RouterGroup, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService, cfg)

	protected.PATCH("/update-account", h.updateAccount)
	protected.PATCH("/avatar", h.updateAvatar)
	protected.PATCH("/cover-image", h.updateCoverImage)
}

// updateAccount godoc
// @Summary Update account details
// @Description Changes the full name and email of the current user.
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.UpdateAccountRequest true "Account details"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/update-account [patch]
func (h *userHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.userService.UpdateAccountDetails(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update account details")
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, dto.ToUserResponse(user), "Account details updated successfully"))
}

// updateAvatar godoc
// @Summary Update avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/avatar [patch]
func (h *userHandler) updateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.userService.UpdateAvatar, "Avatar image updated successfully")
}

// updateCoverImage godoc
// @Summary Update cover image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/cover-image [patch]
func (h *userHandler) updateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.userService.UpdateCoverImage, "Cover image updated successfully")
}

func (h *userHandler) updateImage(
	c *gin.Context,
	field string,
	update func(ctx context.Context, userID string, localPath string) (*domain.PublicUser, error),
	successMsg string,
) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	path, err := h.uploads.save(c, field)
	defer h.uploads.remove(c, path)
	if err != nil {
		respondError(c, err, "Failed to receive "+field)
		return
	}
	if path == "" {
		respondError(c, apperrors.New(apperrors.ErrValidation, field+" file is missing"), "Missing "+field)
		return
	}

	user, err := update(c.Request.Context(), userID, path)
	if err != nil {
		respondError(c, err, "Failed to update "+field)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, dto.ToUserResponse(user), successMsg))
}
