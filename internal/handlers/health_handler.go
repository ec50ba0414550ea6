package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports liveness and verifies the database connection.
func (h *HealthHandler) Health(c *gin.Context) {
	db := h.GetDB(c)

	status := "ok"
	httpCode := http.StatusOK
	dbStatus := "ok"

	if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = "degraded"
		httpCode = http.StatusServiceUnavailable
		dbStatus = "unreachable"
	}

	c.JSON(httpCode, gin.H{
		"status":   status,
		"database": dbStatus,
	})
}
