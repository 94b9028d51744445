package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vidamais/portal-api/pkg/httputil"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{"status": "healthy"})
}
