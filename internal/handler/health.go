package handler

import (
	"context"
	"net/http"
	"time"

	"habitboard/internal/logger"
	"habitboard/internal/store"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(st store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.Error("health.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
