package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/internal/handler"
	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	billingsvc "github.com/itsivali/careconnect-v1/internal/service/billing"
)

type Handler struct {
	service    billingsvc.BillingService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service billingsvc.BillingService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

// RegisterRoutes mounts the billing routes. Bill issuance and
// adjustment are restricted by adminOnly; bill reads require the
// caller to be an admin or the billed patient.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	bills := r.Group("/bills")
	bills.POST("", adminOnly, h.CreateBill)
	bills.GET("/:id", h.GetBill)
	bills.PATCH("/:id/status", adminOnly, h.UpdateBillStatus)
	bills.POST("/:id/items", adminOnly, h.AddLineItem)
	bills.DELETE("/:id/items/:serviceID", adminOnly, h.RemoveLineItem)
	bills.DELETE("/:id", adminOnly, h.DeleteBill)

	r.GET("/patients/:id/bills", h.ListByPatient)
}

func (h *Handler) CreateBill(c *gin.Context) {
	var req model.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	bill, err := h.service.CreateBill(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "bill.created", bill.Serialize())
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(bill.Serialize()))
}

func (h *Handler) GetBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid bill ID"))
		return
	}

	bill, err := h.service.GetBill(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	if !handler.AuthorizePatientAccess(c, bill.PatientID()) {
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(bill.Serialize()))
}

func (h *Handler) UpdateBillStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid bill ID"))
		return
	}

	var req model.UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	bill, err := h.service.UpdateBillStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "bill.status_changed", bill.Serialize())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bill.Serialize()))
}

func (h *Handler) AddLineItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid bill ID"))
		return
	}

	var req model.BillLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	bill, err := h.service.AddLineItem(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "bill.item_added", bill.Serialize())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bill.Serialize()))
}

func (h *Handler) RemoveLineItem(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid bill ID"))
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	bill, err := h.service.RemoveLineItem(c.Request.Context(), billID, serviceID)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "bill.item_removed", bill.Serialize())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bill.Serialize()))
}

func (h *Handler) DeleteBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid bill ID"))
		return
	}

	if err := h.service.DeleteBill(c.Request.Context(), id); err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	handler.EmitEvent(c.Request.Context(), h.outboxRepo, "bill.deleted", gin.H{"id": id})
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

	bills, err := h.service.ListByPatient(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	out := make([]map[string]interface{}, 0, len(bills))
	for _, b := range bills {
		out = append(out, b.Serialize())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(out))
}
