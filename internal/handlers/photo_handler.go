package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// allowed photo extensions, lowercased
var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// PhotoHandler stores uploaded route photos under the media directory and
// hands back the opaque file reference persisted as foto_principal.
type PhotoHandler struct {
	mediaDir string
	logger   *logrus.Logger
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(mediaDir string, logger *logrus.Logger) *PhotoHandler {
	return &PhotoHandler{
		mediaDir: mediaDir,
		logger:   logger,
	}
}

// UploadPhoto receives a multipart photo, writes it under the media dir with
// a fresh UUID name and returns the reference to store on the route.
// POST /api/v1/photos
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "A 'photo' file field is required",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExts[ext] {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "unsupported_media",
			Message: fmt.Sprintf("Unsupported photo extension %q", ext),
		})
		return
	}

	if err := os.MkdirAll(h.mediaDir, 0o750); err != nil {
		h.logger.WithError(err).Error("Failed to create media directory")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to store photo",
		})
		return
	}

	reference := filepath.Join(h.mediaDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, reference); err != nil {
		h.logger.WithError(err).Error("Failed to save uploaded photo")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to store photo",
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"photo":    reference,
		"size":     file.Size,
		"original": file.Filename,
	}).Info("Photo stored")

	c.JSON(http.StatusCreated, gin.H{"photo": filepath.ToSlash(reference)})
}
