package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/shopbooks/backend/internal/application/inventory"
	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/interfaces/http/middleware"
)

// InventoryHandler exposes the stock valuation engine over HTTP
type InventoryHandler struct {
	BaseHandler
	service *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers the inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.POST("/movements", h.RecordMovement)
		inv.GET("/movements/:id", h.GetMovement)
		inv.PUT("/sources/:type/:id/movements", h.ReplaceSourceMovements)
		inv.DELETE("/sources/:type/:id/movements", h.DeleteSourceMovements)
		inv.GET("/products/:id/stock", h.ProductStock)
		inv.GET("/products/:id/batches", h.ProductBatches)
		inv.GET("/stock-report", h.StockReport)
	}
}

// RecordMovement records one stock movement
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req inventoryapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	movement, err := h.service.RecordMovement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}

type sourceMovementsBody struct {
	Movements []inventoryapp.RecordMovementRequest `json:"movements" binding:"required,dive"`
}

// ReplaceSourceMovements atomically swaps a source document's movements
func (h *InventoryHandler) ReplaceSourceMovements(c *gin.Context) {
	referenceType := c.Param("type")
	referenceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid source document id")
		return
	}

	var body sourceMovementsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	movements, err := h.service.ReplaceSourceMovements(c.Request.Context(), referenceType, referenceID, body.Movements)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// DeleteSourceMovements removes every movement of a source document
func (h *InventoryHandler) DeleteSourceMovements(c *gin.Context) {
	referenceType := c.Param("type")
	referenceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid source document id")
		return
	}

	if err := h.service.DeleteSourceMovements(c.Request.Context(), referenceType, referenceID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetMovement returns a single stock movement by id
func (h *InventoryHandler) GetMovement(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	movement, err := h.service.GetMovement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movement)
}

// ProductStock returns a product's current stock level, optionally as of a
// given date (as_of=YYYY-MM-DD).
func (h *InventoryHandler) ProductStock(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var (
		stock decimal.Decimal
		err   error
	)
	if raw := c.Query("as_of"); raw != "" {
		asOf, perr := parseDate(raw)
		if perr != nil {
			h.BadRequest(c, "as_of must be formatted as YYYY-MM-DD")
			return
		}
		stock, err = h.service.ProductStockAsOf(c.Request.Context(), id, asOf)
	} else {
		stock, err = h.service.ProductStock(c.Request.Context(), id)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"product_id": id, "stock": stock})
}

// ProductBatches returns a product's remaining FIFO cost batches
func (h *InventoryHandler) ProductBatches(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	batches, err := h.service.BatchesByProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

type stockReportQuery struct {
	Mode string `form:"mode" binding:"required,oneof=AVERAGE LAST_PURCHASE BATCH"`
	inventoryapp.StockReportFilter
}

// StockReport returns the stock valuation report in the requested cost mode
func (h *InventoryHandler) StockReport(c *gin.Context) {
	var q stockReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.service.StockReport(c.Request.Context(), inventory.CostMode(q.Mode), q.StockReportFilter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
