package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName = "task-tracker-api"
	Version     = "1.0.0"
)

// Root returns the service banner
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Task Tracker API is running",
		"version": Version,
	})
}

// Health reports liveness without touching the database
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": Version,
	})
}
