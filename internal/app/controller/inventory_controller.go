package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
)

type InventoryController struct {
	inventoryService service.InventoryService
}

func NewInventoryController(inventoryService service.InventoryService) *InventoryController {
	return &InventoryController{inventoryService: inventoryService}
}

type SheetRequest struct {
	Name string `json:"name" binding:"required"`
}

type ItemRequest struct {
	Name         string   `json:"name" binding:"required"`
	Quantity     *float64 `json:"quantity"`
	Unit         *string  `json:"unit"`
	LowThreshold *float64 `json:"low_threshold"`
	PurchaseID   *uint    `json:"purchase_id"`
}

type UpdateItemRequest struct {
	Name         string   `json:"name"`
	Quantity     *float64 `json:"quantity"`
	Unit         *string  `json:"unit"`
	LowThreshold *float64 `json:"low_threshold"`
	PurchaseID   *uint    `json:"purchase_id"`
}

type AdjustRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}

// CreateSheet creates an inventory sheet
// POST /api/v1/inventory/sheets
func (ctrl *InventoryController) CreateSheet(c *gin.Context) {
	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req SheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid sheet data")
		return
	}

	sheet, err := ctrl.inventoryService.CreateSheet(householdID, userID, req.Name)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sheet": sheet})
}

// ListSheets lists the household's sheets
// GET /api/v1/inventory/sheets
func (ctrl *InventoryController) ListSheets(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	sheets, err := ctrl.inventoryService.ListSheets(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": sheets})
}

// GetSheet returns one sheet with its items
// GET /api/v1/inventory/sheets/:id
func (ctrl *InventoryController) GetSheet(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sheet, err := ctrl.inventoryService.GetSheet(householdID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrSheetNotFound) {
			errors.NotFound(c, errors.SheetNotFound, "Inventory sheet not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheet": sheet})
}

// RenameSheet renames a sheet
// PATCH /api/v1/inventory/sheets/:id
func (ctrl *InventoryController) RenameSheet(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid sheet data")
		return
	}

	sheet, err := ctrl.inventoryService.RenameSheet(householdID, id, req.Name)
	if err != nil {
		if stderrors.Is(err, service.ErrSheetNotFound) {
			errors.NotFound(c, errors.SheetNotFound, "Inventory sheet not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheet": sheet})
}

// DeleteSheet removes a sheet and its items
// DELETE /api/v1/inventory/sheets/:id
func (ctrl *InventoryController) DeleteSheet(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.inventoryService.DeleteSheet(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrSheetNotFound) {
			errors.NotFound(c, errors.SheetNotFound, "Inventory sheet not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sheet deleted"})
}

// CreateItem adds an item to a sheet
// POST /api/v1/inventory/sheets/:id/items
func (ctrl *InventoryController) CreateItem(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	sheetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid item data")
		return
	}

	item, err := ctrl.inventoryService.CreateItem(householdID, sheetID, service.InventoryItemInput{
		Name:         req.Name,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		LowThreshold: req.LowThreshold,
		PurchaseID:   req.PurchaseID,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrSheetNotFound) {
			errors.NotFound(c, errors.SheetNotFound, "Inventory sheet not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// ListItems lists items, optionally filtered by sheet
// GET /api/v1/inventory/items?sheet_id=
func (ctrl *InventoryController) ListItems(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	sheetID, ok := queryID(c, "sheet_id")
	if !ok {
		return
	}

	items, err := ctrl.inventoryService.ListItems(householdID, sheetID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// LowStock lists items at or below their threshold
// GET /api/v1/inventory/items/low-stock
func (ctrl *InventoryController) LowStock(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	items, err := ctrl.inventoryService.ListLowStock(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateItem patches an item
// PATCH /api/v1/inventory/items/:id
func (ctrl *InventoryController) UpdateItem(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid item data")
		return
	}

	item, err := ctrl.inventoryService.UpdateItem(householdID, id, service.InventoryItemInput{
		Name:         req.Name,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		LowThreshold: req.LowThreshold,
		PurchaseID:   req.PurchaseID,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrInventoryItemNotFound) {
			errors.NotFound(c, errors.InventoryItemNotFound, "Inventory item not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// AdjustItem applies a relative quantity change
// POST /api/v1/inventory/items/:id/adjust
func (ctrl *InventoryController) AdjustItem(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid adjustment data")
		return
	}

	item, err := ctrl.inventoryService.AdjustQuantity(householdID, id, req.Delta)
	if err != nil {
		if stderrors.Is(err, service.ErrInventoryItemNotFound) {
			errors.NotFound(c, errors.InventoryItemNotFound, "Inventory item not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem removes an item
// DELETE /api/v1/inventory/items/:id
func (ctrl *InventoryController) DeleteItem(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.inventoryService.DeleteItem(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrInventoryItemNotFound) {
			errors.NotFound(c, errors.InventoryItemNotFound, "Inventory item not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// SetItemTags replaces an item's tags
// PUT /api/v1/inventory/items/:id/tags
func (ctrl *InventoryController) SetItemTags(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid tag data")
		return
	}

	item, err := ctrl.inventoryService.SetItemTags(householdID, id, req.TagIDs)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrInventoryItemNotFound):
			errors.NotFound(c, errors.InventoryItemNotFound, "Inventory item not found")
		case stderrors.Is(err, service.ErrTagNotFound):
			errors.NotFound(c, errors.TagNotFound, "Tag not found")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}
