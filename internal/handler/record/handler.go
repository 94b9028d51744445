package record

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/middleware"
	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/service/record"
	"github.com/vidamais/portal-api/pkg/errors"
	"github.com/vidamais/portal-api/pkg/httputil"
)

type Handler struct {
	service *record.Service
}

func NewHandler(service *record.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/records")
	{
		records.GET("", h.ListRecords)
		records.GET("/:id", h.GetRecord)
		records.POST("", h.AddRecord)
	}
}

func (h *Handler) ListRecords(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	records, err := h.service.ListRecords(c.Request.Context(), caller)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, records)
}

func (h *Handler) GetRecord(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid record ID", err))
		return
	}

	rec, err := h.service.GetRecord(c.Request.Context(), caller, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, rec)
}

// AddRecord appends a clinical history entry. The service rejects non-staff
// callers.
func (h *Handler) AddRecord(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	var req model.CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}

	rec, err := h.service.AddRecord(c.Request.Context(), caller, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, rec)
}
