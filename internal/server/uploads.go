package server

import (
	"os"
	"path/filepath"
	"strings"

	"outfitly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadMedia handles POST /api/media/upload. Images are stored as opaque
// blobs under the media directory and addressed by URL; the returned URL is
// what clients put in avatar_url, photo_url and image_url fields.
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	if s.config.MediaDir == "" {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(os.ErrNotExist))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}
	if file.Size > maxUploadBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File too large (max 10 MiB)"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported file type"))
	}

	// Server-generated name; the client's filename never touches the path.
	name := uuid.New().String() + ext
	if err := os.MkdirAll(s.config.MediaDir, 0o755); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if err := c.SaveFile(file, filepath.Join(s.config.MediaDir, name)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": "/media/" + name,
	})
}
