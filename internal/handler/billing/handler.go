package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/middleware"
	"github.com/vidamais/portal-api/internal/service/billing"
	"github.com/vidamais/portal-api/pkg/errors"
	"github.com/vidamais/portal-api/pkg/httputil"
)

type Handler struct {
	service *billing.Service
}

func NewHandler(service *billing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	invoices := r.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/:id/document", h.DownloadDocument)
	}
}

func (h *Handler) ListInvoices(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	invoices, err := h.service.ListInvoices(c.Request.Context(), caller)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, invoices)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid invoice ID", err))
		return
	}

	invoice, err := h.service.GetInvoice(c.Request.Context(), caller, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, invoice)
}

func (h *Handler) DownloadDocument(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid invoice ID", err))
		return
	}

	doc, err := h.service.GenerateDocument(c.Request.Context(), caller, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", doc)
}
