package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabgo/utils"
)

// Health handles GET /health, serving the latest monitor snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
