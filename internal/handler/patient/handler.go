package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/handler"
	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	patientsvc "github.com/itsivali/careconnect-v1/internal/service/patient"
)

type Handler struct {
	service    patientsvc.PatientService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service patientsvc.PatientService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

// RegisterRoutes mounts the patient routes. Creation, listing and
// deletion are restricted by adminOnly; per-patient reads and updates
// additionally require the caller to be an admin or the patient
// themselves.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	patients := r.Group("/patients")
	patients.POST("", adminOnly, h.CreatePatient)
	patients.GET("", adminOnly, h.ListPatients)
	patients.GET("/:id", h.GetPatient)
	patients.PUT("/:id", h.UpdatePatient)
	patients.DELETE("/:id", adminOnly, h.DeletePatient)
	patients.GET("/:id/doctors", h.ListDoctors)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "patient.created", patient.Serialize())
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient.Serialize()))
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	if !handler.AuthorizePatientAccess(c, id) {
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient.Serialize()))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	if !handler.AuthorizePatientAccess(c, id) {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.service.UpdatePatient(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "patient.updated", patient.Serialize())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient.Serialize()))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "patient.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id}))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	out := make([]map[string]interface{}, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.Serialize())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(out))
}

// ListDoctors returns the doctors the patient has appointments with,
// derived from the appointment graph. A doctor appears once per
// appointment.
func (h *Handler) ListDoctors(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	if !handler.AuthorizePatientAccess(c, id) {
		return
	}

	doctors, err := h.service.ListDoctors(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	out := make([]map[string]interface{}, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, d.Serialize())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(out))
}
