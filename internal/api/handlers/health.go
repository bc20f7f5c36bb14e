package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetHealth is the liveness probe; it returns 200 whenever the server is up.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "fpl-transfer-analyzer",
		"timestamp": time.Now().UTC(),
	})
}
