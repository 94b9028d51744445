package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/middleware"
	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/service/appointment"
	"github.com/vidamais/portal-api/pkg/errors"
	"github.com/vidamais/portal-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.RescheduleAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}

	apt, err := h.service.CreateAppointment(c.Request.Context(), caller, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), caller)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid appointment ID", err))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), caller, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid appointment ID", err))
		return
	}

	var req model.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}

	apt, err := h.service.RescheduleAppointment(c.Request.Context(), caller, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid appointment ID", err))
		return
	}

	apt, err := h.service.CancelAppointment(c.Request.Context(), caller, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}
