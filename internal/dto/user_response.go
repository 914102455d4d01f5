package dto

import (
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/core/domain"
)

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID     string    `json:"userID"`
	UserName   string    `json:"userName"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToUserResponse(user *domain.PublicUser) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		UserName:   user.UserName,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
