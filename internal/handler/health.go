package handler

import (
	"github.com/gin-gonic/gin"

	"recircle-core/internal/handler/response"
)

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
