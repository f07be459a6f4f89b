package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
	activeSessions  func() int
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status         string `json:"status"`
	Database       string `json:"database"`
	ActiveSessions int    `json:"active_sessions"`
	Timestamp      string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. Both callbacks may be nil.
func NewHealthController(dbHealthChecker func() bool, activeSessions func() int) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		activeSessions:  activeSessions,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.activeSessions != nil {
		response.ActiveSessions = h.activeSessions()
	}

	c.JSON(http.StatusOK, response)
}
