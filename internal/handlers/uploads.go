package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/user_accounts_backend/internal/apperrors"
	"github.com/SscSPs/user_accounts_backend/internal/middleware"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/SscSPs/user_accounts_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// uploadSaver stores multipart files in a temp directory so the object storage can read them by path.
type uploadSaver struct {
	tempDir  string
	maxBytes int64
}

func newUploadSaver(cfg *config.Config) uploadSaver {
	return uploadSaver{tempDir: cfg.UploadTempDir, maxBytes: cfg.MaxUploadSizeMB << 20}
}

// save writes the form file field to the temp dir. It returns an empty path when the field is absent.
// The caller must pass the path to remove once done.
func (u uploadSaver) save(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", apperrors.Wrap(apperrors.ErrValidation, "invalid multipart form", err)
	}

	if u.maxBytes > 0 && file.Size > u.maxBytes {
		return "", apperrors.New(apperrors.ErrValidation, fmt.Sprintf("%s exceeds the maximum size of %d MB", field, u.maxBytes>>20))
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", apperrors.New(apperrors.ErrValidation, fmt.Sprintf("%s must be a jpg, png, gif or webp image", field))
	}

	if err := os.MkdirAll(u.tempDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	name, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", err
	}
	path := filepath.Join(u.tempDir, name+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", field, err)
	}
	return path, nil
}

// remove deletes temp files; empty paths are skipped.
func (u uploadSaver) remove(c *gin.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			middleware.GetLoggerFromContext(c).Warn("Failed to remove temp upload", slog.String("error", err.Error()))
		}
	}
}
