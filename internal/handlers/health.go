package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck godoc
// @Summary      Health check endpoint
// @Description  Reports that the storefront client is up.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string  "Service is up"
// @Router       /health [get]
// @Example      Valid response
//
//	{
//	  "status": "ok",
//	  "service": "storefront-client"
//	}
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "storefront-client",
	})
}
