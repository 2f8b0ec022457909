package picking

import (
	"github.com/wms/backend/internal/domain/picking"
)

// NeedRequest is one demand line of a planning request
type NeedRequest struct {
	ProductCode  string `json:"product_code" binding:"required"`
	ProductName  string `json:"product_name"`
	NeededPieces int64  `json:"needed_pieces" binding:"required,gt=0"`
	UnitCode     string `json:"unit_code"`
}

// PlanRequest asks for an allocation plan and picking route over the current
// stock of one warehouse
type PlanRequest struct {
	WarehouseID string        `json:"warehouse_id" binding:"required,uuid"`
	Needs       []NeedRequest `json:"needs" binding:"required,min=1,dive"`
}

// PlanSummary carries the headline numbers of a planning call
type PlanSummary struct {
	TotalProducts        int `json:"total_products"`
	SufficientProducts   int `json:"sufficient_products"`
	InsufficientProducts int `json:"insufficient_products"`
	NotFoundProducts     int `json:"not_found_products"`
	TotalLocations       int `json:"total_locations"`
}

// PlanResponse is the full planning result: one plan per requested product,
// the consolidated walking route, and the summary
type PlanResponse struct {
	PlanID  string                `json:"plan_id"`
	Plans   []picking.ProductPlan `json:"plans"`
	Route   []picking.RouteStep   `json:"route"`
	Summary PlanSummary           `json:"summary"`
}
