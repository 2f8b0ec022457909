package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wms/backend/internal/application/picking"
)

// PickingHandler serves picking plan requests
type PickingHandler struct {
	BaseHandler
	service *picking.Service
}

// NewPickingHandler creates a picking handler
func NewPickingHandler(service *picking.Service) *PickingHandler {
	return &PickingHandler{service: service}
}

// RegisterRoutes registers picking routes
func (h *PickingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/picking")
	group.POST("/plan", h.Plan)
}

// Plan computes an allocation plan and picking route for a set of product
// needs. Shortfalls come back in the plan body, not as an error status.
func (h *PickingHandler) Plan(c *gin.Context) {
	var req picking.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.PlanPicking(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
