package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/handler"
	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	appointmentsvc "github.com/itsivali/careconnect-v1/internal/service/appointment"
)

type Handler struct {
	service    appointmentsvc.AppointmentService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service appointmentsvc.AppointmentService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

// RegisterRoutes mounts the appointment routes. Patients may book,
// reschedule and cancel their own appointments; hard deletion is
// restricted by adminOnly.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	appointments := r.Group("/appointments")
	appointments.POST("", h.CreateAppointment)
	appointments.GET("/:id", h.GetAppointment)
	appointments.PUT("/:id", h.UpdateAppointment)
	appointments.POST("/:id/cancel", h.CancelAppointment)
	appointments.DELETE("/:id", adminOnly, h.DeleteAppointment)

	r.GET("/patients/:id/appointments", h.ListByPatient)
	r.GET("/doctors/:id/appointments", adminOnly, h.ListByDoctor)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if !handler.AuthorizePatientAccess(c, req.PatientID) {
		return
	}

	appointment, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "appointment.scheduled", appointment.Serialize())
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment.Serialize()))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	if !handler.AuthorizePatientAccess(c, appointment.PatientID()) {
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment.Serialize()))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	existing, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	if !handler.AuthorizePatientAccess(c, existing.PatientID()) {
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointment, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "appointment.updated", appointment.Serialize())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment.Serialize()))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	existing, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	if !handler.AuthorizePatientAccess(c, existing.PatientID()) {
		return
	}

	appointment, err := h.service.CancelAppointment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "appointment.cancelled", appointment.Serialize())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment.Serialize()))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "appointment.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id}))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}
	if !handler.AuthorizePatientAccess(c, id) {
		return
	}
	h.list(c, func() ([]*model.Appointment, error) {
		return h.service.ListByPatient(c.Request.Context(), id)
	})
}

func (h *Handler) ListByDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}
	h.list(c, func() ([]*model.Appointment, error) {
		return h.service.ListByDoctor(c.Request.Context(), id)
	})
}

func (h *Handler) list(c *gin.Context, fetch func() ([]*model.Appointment, error)) {
	appointments, err := fetch()
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	out := make([]map[string]interface{}, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, a.Serialize())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(out))
}
