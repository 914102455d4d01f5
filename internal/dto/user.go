package dto

// RegisterUserRequest carries the text fields of the multipart registration form.
type RegisterUserRequest struct {
	UserName string `form:"userName" json:"userName" validate:"required,notblank,max=64"`
	Email    string `form:"email" json:"email" validate:"required,notblank,email,max=254"`
	FullName string `form:"fullName" json:"fullName" validate:"required,notblank,max=128"`
	Password string `form:"password" json:"password" validate:"required,notblank,max=72"`
}

// RegisterUploads holds the local paths of the files received with a registration.
// CoverImagePath is optional.
type RegisterUploads struct {
	AvatarPath     string
	CoverImagePath string
}

// LoginRequest identifies the user by user name or email.
type LoginRequest struct {
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest defines the body for changing the current user's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,notblank,max=72"`
}

// UpdateAccountRequest defines the account details a user may change.
type UpdateAccountRequest struct {
	FullName string `json:"fullName" validate:"required,notblank,max=128"`
	Email    string `json:"email" validate:"required,notblank,email,max=254"`
}

// RefreshTokenRequest is the optional body of the refresh endpoint when no cookie is sent.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}
