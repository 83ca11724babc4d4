package handlers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errUploadFailed marks a server-side storage failure, as opposed to a
// rejected file.
var errUploadFailed = errors.New("upload failed")

// allowedImageExts is the upload extension whitelist.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ImageUploader stores uploaded images under one directory served at /img.
type ImageUploader struct {
	dir      string
	maxBytes int64
}

// NewImageUploader creates an uploader writing to dir.
func NewImageUploader(dir string, maxBytes int64) *ImageUploader {
	return &ImageUploader{
		dir:      dir,
		maxBytes: maxBytes,
	}
}

// Save stores the single "image" form file if one was attached and
// returns its public URL. Filenames are a random uuid plus the original
// extension so concurrent uploads cannot collide. No file attached is
// not an error: it returns "" so edits preserve the existing image.
func (u *ImageUploader) Save(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil || file.Size == 0 {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	if u.maxBytes > 0 && file.Size > u.maxBytes {
		return "", fmt.Errorf("image exceeds the %d byte limit", u.maxBytes)
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		log.Printf("Failed to create upload directory: %v", err)
		return "", errUploadFailed
	}

	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(u.dir, name)); err != nil {
		log.Printf("Failed to store upload: %v", err)
		return "", errUploadFailed
	}

	return "/img/" + name, nil
}

// respondUploadError maps a Save failure to its response: storage
// failures are server errors, rejected files go back to the client.
func respondUploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errUploadFailed) {
		return databaseError(c)
	}
	return c.Status(fiber.StatusBadRequest).SendString(err.Error())
}
