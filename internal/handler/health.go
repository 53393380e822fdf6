package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danil228cmd/danisa-shop-bot/internal/repository"
)

type HealthHandler struct {
	store   repository.Store
	backend string
}

func NewHealthHandler(store repository.Store, backend string) *HealthHandler {
	return &HealthHandler{store: store, backend: backend}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "backend": h.backend})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": h.backend})
}
