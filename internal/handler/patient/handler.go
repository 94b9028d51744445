package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/middleware"
	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/service/audit"
	"github.com/vidamais/portal-api/internal/service/patient"
	"github.com/vidamais/portal-api/pkg/errors"
	"github.com/vidamais/portal-api/pkg/httputil"
)

// recentActivityLimit caps the client-facing recent-activity view.
const recentActivityLimit = 20

type Handler struct {
	service *patient.Service
	auditor *audit.Service
}

func NewHandler(service *patient.Service, auditor *audit.Service) *Handler {
	return &Handler{
		service: service,
		auditor: auditor,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.GetProfile)
	r.PUT("/profile", h.UpdateProfile)
	r.GET("/profile/activity", h.RecentActivity)

	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.POST("", h.RegisterPatient)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), caller)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), caller, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, profile)
}

// RecentActivity returns the caller's own latest audit entries.
func (h *Handler) RecentActivity(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	httputil.RespondWithSuccess(c, h.auditor.RecentFor(caller.PatientID, recentActivityLimit))
}

func (h *Handler) ListPatients(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), caller)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid patient ID", err))
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), caller, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, p)
}

// UpdatePatient patches a patient's contact details. Staff correcting a
// client record; a client can only reach their own id.
func (h *Handler) UpdatePatient(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid patient ID", err))
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}

	p, err := h.service.UpdatePatient(c.Request.Context(), caller, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httputil.RespondWithStatus(c, http.StatusUnauthorized, "missing caller context")
		return
	}

	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}

	p, err := h.service.RegisterPatient(c.Request.Context(), caller, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, p)
}
