package handlers

import (
	"net/http"
	"time"

	"vms-backend/pkg/database"
	"vms-backend/pkg/redis"

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

// Health reports the status of the service and its backing stores.
// Redis is optional; only a mongo failure degrades the overall status.
func (h *HealthHandler) Health(c *gin.Context) {
	components := gin.H{}
	status := http.StatusOK

	if err := database.Health(h.db); err != nil {
		components["mongodb"] = gin.H{"status": "unhealthy"}
		status = http.StatusServiceUnavailable
	} else {
		components["mongodb"] = gin.H{"status": "healthy"}
	}

	components["redis"] = redisComponent(h.redisClient)

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"timestamp":  time.Now().UTC(),
		"components": components,
	})
}

// redisComponent reduces the redis health check to the same shape as the
// other components.
func redisComponent(client *redis.Client) gin.H {
	if client == nil {
		return gin.H{"status": "disabled"}
	}

	rh := client.HealthCheck()
	if !rh.IsConnected {
		return gin.H{"status": "unhealthy", "error": rh.Error}
	}
	return gin.H{"status": "healthy", "responseTime": rh.ResponseTime.String()}
}
