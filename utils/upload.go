package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	config "github.com/anjiri1684/driving_exam/configs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrFileType = errors.New("file type not allowed")
var ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")

func uploadRoot() string {
	root := config.Config("UPLOAD_PATH")
	if root == "" {
		root = "./uploads"
	}
	return root
}

func allowedExtensions() []string {
	raw := config.Config("ALLOWED_FILE_TYPES")
	if raw == "" {
		raw = "jpg,jpeg,png,gif"
	}
	return strings.Split(raw, ",")
}

// ValidateUpload checks the extension whitelist and size cap from config.
func ValidateUpload(file *multipart.FileHeader) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")

	allowed := false
	for _, candidate := range allowedExtensions() {
		if ext == strings.TrimSpace(candidate) {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrFileType
	}

	maxSize := int64(config.ConfigInt("MAX_FILE_SIZE", 10*1024*1024))
	if file.Size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// SaveUpload stores a multipart file under uploads/<kind>/ with a unique name
// and returns the relative URL clients use to fetch it.
func SaveUpload(c *fiber.Ctx, file *multipart.FileHeader, kind string) (string, error) {
	if err := ValidateUpload(file); err != nil {
		return "", err
	}

	dir := filepath.Join(uploadRoot(), kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s%s", kind, uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return path.Join("/uploads", kind, name), nil
}

// RemoveUploadedFile deletes the on-disk file behind a relative /uploads URL.
// Callers treat failures as non-fatal.
func RemoveUploadedFile(relativeURL string) error {
	trimmed := strings.TrimPrefix(relativeURL, "/uploads/")
	if trimmed == relativeURL || trimmed == "" {
		return fmt.Errorf("not an uploads path: %s", relativeURL)
	}
	return os.Remove(filepath.Join(uploadRoot(), filepath.FromSlash(trimmed)))
}
