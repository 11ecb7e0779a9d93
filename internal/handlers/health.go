package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

type HealthHandler struct {
	store supabase.Store
}

func NewHealthHandler(store supabase.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health godoc
// @Summary     Health check
// @Description Returns the health status of the API and whether a backend is configured
// @Tags        health
// @Accept      json
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	backend := "unconfigured"
	if h.store.Configured() {
		backend = "supabase"
	}
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Backend: backend,
	})
}
