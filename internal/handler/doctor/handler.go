package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/handler"
	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	doctorsvc "github.com/itsivali/careconnect-v1/internal/service/doctor"
)

type Handler struct {
	service    doctorsvc.DoctorService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service doctorsvc.DoctorService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

// RegisterRoutes mounts the doctor routes. Writes are restricted by
// adminOnly; any authenticated user may browse doctors.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	doctors := r.Group("/doctors")
	doctors.POST("", adminOnly, h.CreateDoctor)
	doctors.GET("", h.ListDoctors)
	doctors.GET("/:id", h.GetDoctor)
	doctors.PUT("/:id", adminOnly, h.UpdateDoctor)
	doctors.DELETE("/:id", adminOnly, h.DeleteDoctor)
	doctors.GET("/:id/patients", adminOnly, h.ListPatients)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.CreateDoctor(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "doctor.created", doctor.Serialize())
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor.Serialize()))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	doctor, err := h.service.GetDoctor(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor.Serialize()))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.UpdateDoctor(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "doctor.updated", doctor.Serialize())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor.Serialize()))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	if err := h.service.DeleteDoctor(c.Request.Context(), id); err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "doctor.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id}))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
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

func (h *Handler) ListPatients(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), id)
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
