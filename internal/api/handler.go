package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"school-hub-backend/internal/assets"
	"school-hub-backend/internal/school"
	"school-hub-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc       *school.Service
	assets    *assets.Gateway
	listCache *cache.Cache
}

// NewHandler creates a new API handler. listCache may be nil when response
// caching is not wired (tests).
func NewHandler(svc *school.Service, gw *assets.Gateway, listCache *cache.Cache) *Handler {
	return &Handler{
		svc:       svc,
		assets:    gw,
		listCache: listCache,
	}
}

// abortWithCreateError converts a create failure into its HTTP outcome.
func abortWithCreateError(c *gin.Context, err error) {
	var verr *school.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
	case errors.Is(err, store.ErrDuplicate):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A school with this email already exists"})
	default:
		log.Printf("create school failed: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
