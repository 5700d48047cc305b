package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/achoumais/achoumais/internal/cache"
	"github.com/achoumais/achoumais/internal/catalog"
	"github.com/achoumais/achoumais/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint. The event store and cache
// are optional subsystems, so their checks report "disabled" when the
// deployment runs without them.
type HealthHandler struct {
	loader *catalog.FeedLoader
	db     *sqlx.DB
	redis  *cache.RedisClient
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(loader *catalog.FeedLoader, db *sqlx.DB, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{loader: loader, db: db, redis: redis}
}

// GetHealth responds with service, feed, database and cache status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	feedStatus := "available"
	productCount := 0
	if products, err := h.loader.Load(ctx); err != nil {
		feedStatus = "unavailable"
	} else {
		productCount = len(products)
	}

	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = "connected"
		if err := h.db.PingContext(ctx); err != nil {
			dbStatus = "disconnected"
		}
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "connected"
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "disconnected"
		}
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"feed": gin.H{
			"status":   feedStatus,
			"products": productCount,
		},
		"database": gin.H{"status": dbStatus},
		"redis":    gin.H{"status": redisStatus},
	})
}
