package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance with the custom tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		RegisterCustomValidations(validate)
	})
	return validate
}

// RegisterCustomValidations registers the tags used by request DTOs on v.
func RegisterCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

// ValidateStruct validates s and returns an apperrors.ErrValidation error describing
// the first failing field.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.New(apperrors.ErrValidation, describeFieldError(verrs[0]))
	}
	return apperrors.Wrap(apperrors.ErrValidation, "invalid request", err)
}

func describeFieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
