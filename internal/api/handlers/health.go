package handlers

import (
	"net/http"

	"smarthelmet-backend/pkg/database"
	"smarthelmet-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	db          *mongo.Database
	redisClient *redis.Client
}

func NewHealthHandler(db *mongo.Database, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
	}
}

// Health reports liveness plus the state of both backing stores.
// MongoDB down means degraded service; Redis down only degrades
// command delivery and the live cache.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	overall := "ok"
	mongoStatus := "healthy"

	if err := database.Health(h.db); err != nil {
		mongoStatus = "unhealthy: " + err.Error()
		overall = "degraded"
		status = http.StatusServiceUnavailable
	}

	redisStatus := h.redisClient.HealthCheck()

	c.JSON(status, gin.H{
		"status":  overall,
		"mongodb": mongoStatus,
		"redis":   redisStatus,
	})
}
