package handlers

import (
	"net/http"
	"time"

	"lesson-reservations/internal/config"
	"lesson-reservations/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	cfg := config.Get()

	services := make(map[string]string)
	status := "healthy"
	code := http.StatusOK

	if h.db != nil {
		if err := database.HealthCheck(h.db); err != nil {
			services["database"] = "unhealthy"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			services["database"] = "healthy"
		}
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Services:  services,
	})
}

// ReadinessCheck handles GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"ready":     true,
		"timestamp": time.Now(),
	})
}
