package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"school-hub-backend/internal/assets"
)

// Stored file names embed their creation timestamp, so content for a given
// name never changes and clients may cache it indefinitely.
const imageCacheControl = "public, max-age=31536000, immutable"

// GetImage handles GET /schools/images/:filename.
func (h *Handler) GetImage(c *gin.Context) {
	name := c.Param("filename")

	data, contentType, err := h.assets.Fetch(name)
	if err != nil {
		switch {
		case errors.Is(err, assets.ErrInvalidName):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		case errors.Is(err, assets.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		default:
			log.Printf("serve image %q failed: %v", name, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Header("Cache-Control", imageCacheControl)
	c.Data(http.StatusOK, contentType, data)
}
