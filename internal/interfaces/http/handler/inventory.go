package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// InventoryHandler serves inventory record and movement log requests
type InventoryHandler struct {
	BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/inventory")
	group.POST("/records", h.CreateRecord)
	group.GET("/records", h.ListBySKU)
	group.GET("/records/:id", h.GetRecord)
	group.GET("/records/:id/movements", h.ListMovements)
}

// CreateRecord registers stock received at a location
func (h *InventoryHandler) CreateRecord(c *gin.Context) {
	var req inventory.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateRecord(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListBySKU returns all records of one SKU in a warehouse
func (h *InventoryHandler) ListBySKU(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "warehouse_id must be a valid UUID")
		return
	}
	sku := c.Query("sku")
	if sku == "" {
		h.BadRequest(c, "sku is required")
		return
	}

	records, err := h.service.ListBySKU(c.Request.Context(), warehouseID, sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// GetRecord returns one inventory record
func (h *InventoryHandler) GetRecord(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMovements returns the movement log entries touching a record
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	movements, err := h.service.ListMovements(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

func (h *InventoryHandler) recordID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Record ID must be a valid UUID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Record ID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
