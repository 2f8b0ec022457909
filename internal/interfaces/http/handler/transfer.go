package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wms/backend/internal/application/transfer"
	domaintransfer "github.com/wms/backend/internal/domain/transfer"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// TransferHandler serves transfer order requests
type TransferHandler struct {
	BaseHandler
	service *transfer.Service
}

// NewTransferHandler creates a transfer handler
func NewTransferHandler(service *transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

// RegisterRoutes registers transfer routes
func (h *TransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/transfers")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("/:id/submit", h.Submit)
	group.POST("/:id/approve", h.Approve)
	group.POST("/:id/execute", h.Execute)
	group.POST("/:id/cancel", h.Cancel)
}

// Create creates a draft transfer order
func (h *TransferHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Actor is required")
		return
	}

	var req transfer.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns transfer orders, optionally filtered by status
func (h *TransferHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.service.List(c.Request.Context(),
		domaintransfer.OrderStatus(req.Status), req.Limit, req.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns one transfer order with its lines
func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Submit moves a draft order to pending approval
func (h *TransferHandler) Submit(c *gin.Context) {
	h.transition(c, h.service.Submit)
}

// Approve moves a pending order to approved
func (h *TransferHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Cancel cancels an order that has not started executing
func (h *TransferHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// Execute runs all lines of an approved order. The response always carries
// the final order state: a failed execution is a COMPLETED request with a
// FAILED order, not an HTTP error.
func (h *TransferHandler) Execute(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Actor is required")
		return
	}

	resp, err := h.service.Execute(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *TransferHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID, string) (*transfer.OrderResponse, error)) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Actor is required")
		return
	}

	resp, err := fn(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *TransferHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Order ID must be a valid UUID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Order ID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
