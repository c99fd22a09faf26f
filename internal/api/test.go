package api

import (
	"net/http" // HTTP status codes
	"time"     // Timestamps

	"github.com/gin-gonic/gin" // Gin web framework
)

// TestGetHandler reports that the API is reachable
func TestGetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "API is working",       // Status message
			"status":    "OK",                   // Status code
			"timestamp": time.Now().UnixMilli(), // Epoch milliseconds
		})
	}
}

// TestPostHandler echoes the posted payload back to the caller
func TestPostHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any // Accept any JSON object
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "Received data successfully", // Status message
			"received":  payload,                      // Echo of the payload
			"timestamp": time.Now().UnixMilli(),       // Epoch milliseconds
		})
	}
}
