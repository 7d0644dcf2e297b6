package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "coop-savings-backend"

// getHome godoc
// @Summary Show the status of server.
// @Description Returns the service name. Unauthenticated.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"service": serviceName, "status": "ok"})
}

// registerHomeRoutes registers the unauthenticated liveness routes.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
