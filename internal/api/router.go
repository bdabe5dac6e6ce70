package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"workshop-scheduler-backend/config"
	"workshop-scheduler-backend/internal/engine"
	"workshop-scheduler-backend/internal/mw"
	"workshop-scheduler-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, eng *engine.Engine, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, eng, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Read side. Only the calendar grid is cached; it is pure, and
		// caching the collections would hide fresh mutations for a TTL.
		api.GET("/employees", handler.GetEmployees)
		api.GET("/jobs", handler.GetJobs)
		api.GET("/bays", handler.GetBays)
		api.GET("/bays/ready", handler.GetBayReady)
		api.GET("/schedule", handler.GetSchedule)
		api.GET("/calendar/month", caching, handler.GetMonthGrid)

		// Mutations. Each responds with the refreshed collections.
		api.POST("/assignments", handler.PostAssignment)
		api.DELETE("/assignments", handler.DeleteAssignment)
		api.PUT("/jobs/:job_id/assignees", handler.PutJobAssignees)
		api.POST("/bays/:bay_id/assign", handler.PostBayAssign)
		api.POST("/bays/:bay_id/release", handler.PostBayRelease)
		api.POST("/reset", handler.ResetStatuses)

		// Push subscriptions.
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
