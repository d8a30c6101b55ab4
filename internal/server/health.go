package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handiism/albumlinks/internal/catalog/dto"
)

// Health handles GET /health.
func Health(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := dto.Health{
			Status:   "ok",
			Service:  ServiceName,
			Version:  deps.Version,
			Database: "not configured",
		}
		status := http.StatusOK

		if deps.DB != nil {
			if err := deps.DB.HealthCheck(c.Request.Context()); err != nil {
				resp.Status = "unhealthy"
				resp.Database = "unavailable"
				status = http.StatusServiceUnavailable
			} else {
				resp.Database = "sqlite"
			}
		}

		c.JSON(status, resp)
	}
}
