package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"school-hub-backend/config"
	"school-hub-backend/internal/assets"
	"school-hub-backend/internal/mw"
	"school-hub-backend/internal/school"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, svc *school.Service, gw *assets.Gateway) *gin.Engine {
	r := gin.Default()

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	listCache := cache.New(ttl, 2*ttl)

	handler := NewHandler(svc, gw, listCache)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	caching := mw.Cache(listCache, ttl)

	schools := r.Group("/schools")
	schools.Use(rateLimiter)
	{
		schools.GET("", caching, handler.ListSchools)
		schools.POST("", handler.CreateSchool)
		schools.GET("/images/:filename", handler.GetImage)
	}

	return r
}
