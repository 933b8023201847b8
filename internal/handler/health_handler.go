package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-cms/internal/infrastructure/database"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db *mongo.Database
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *mongo.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse represents the response for the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health handles GET /health - liveness probe with a database ping.
func (h *HealthHandler) Health(c *gin.Context) {
	timestamp := time.Now().UTC().Format(TimeFormat)

	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Timestamp: timestamp,
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: timestamp,
	})
}
