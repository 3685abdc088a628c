package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/handler"
	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	catalogsvc "github.com/itsivali/careconnect-v1/internal/service/catalog"
)

type Handler struct {
	service    catalogsvc.CatalogService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service catalogsvc.CatalogService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

// RegisterRoutes mounts the service catalog routes. Writes are
// restricted by adminOnly; any authenticated user may browse the
// catalog.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	services := r.Group("/services")
	services.POST("", adminOnly, h.CreateService)
	services.GET("", h.ListServices)
	services.GET("/:id", h.GetService)
	services.PUT("/:id", adminOnly, h.UpdateService)
	services.DELETE("/:id", adminOnly, h.DeleteService)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	service, err := h.service.CreateService(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "service.created", service.Serialize())
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(service.Serialize()))
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	service, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(service.Serialize()))
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	service, err := h.service.UpdateService(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "service.updated", service.Serialize())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(service.Serialize()))
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "service.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id}))
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	out := make([]map[string]interface{}, 0, len(services))
	for _, s := range services {
		out = append(out, s.Serialize())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(out))
}
