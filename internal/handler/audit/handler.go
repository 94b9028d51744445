package audit

import (
	"github.com/gin-gonic/gin"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/service/audit"
	"github.com/vidamais/portal-api/pkg/errors"
	"github.com/vidamais/portal-api/pkg/httputil"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", h.ListEntries)
}

// ListEntries returns a page of the audit trail, oldest first.
func (h *Handler) ListEntries(c *gin.Context) {
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > maxPageSize {
		p.PageSize = defaultPageSize
	}

	entries := h.service.Entries()
	start := (p.Page - 1) * p.PageSize
	if start > len(entries) {
		start = len(entries)
	}
	end := min(start+p.PageSize, len(entries))

	httputil.RespondWithSuccess(c, entries[start:end])
}
