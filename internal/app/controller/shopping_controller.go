package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
)

type ShoppingController struct {
	shoppingService service.ShoppingService
}

func NewShoppingController(shoppingService service.ShoppingService) *ShoppingController {
	return &ShoppingController{shoppingService: shoppingService}
}

type ShoppingListRequest struct {
	Name string `json:"name" binding:"required"`
}

type ShoppingItemRequest struct {
	Name            string   `json:"name"`
	InventoryItemID *uint    `json:"inventory_item_id"`
	Quantity        *float64 `json:"quantity"`
	Checked         *bool    `json:"checked"`
}

// CreateList creates a shopping list
// POST /api/v1/shopping/lists
func (ctrl *ShoppingController) CreateList(c *gin.Context) {
	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid list data")
		return
	}

	list, err := ctrl.shoppingService.CreateList(householdID, userID, req.Name)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"list": list})
}

// ListLists lists the household's shopping lists
// GET /api/v1/shopping/lists
func (ctrl *ShoppingController) ListLists(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	lists, err := ctrl.shoppingService.ListLists(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

// GetList returns one list with items
// GET /api/v1/shopping/lists/:id
func (ctrl *ShoppingController) GetList(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := ctrl.shoppingService.GetList(householdID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrListNotFound) {
			errors.NotFound(c, errors.ListNotFound, "Shopping list not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// RenameList renames a list
// PATCH /api/v1/shopping/lists/:id
func (ctrl *ShoppingController) RenameList(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid list data")
		return
	}

	list, err := ctrl.shoppingService.RenameList(householdID, id, req.Name)
	if err != nil {
		if stderrors.Is(err, service.ErrListNotFound) {
			errors.NotFound(c, errors.ListNotFound, "Shopping list not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// DeleteList removes a list and its items
// DELETE /api/v1/shopping/lists/:id
func (ctrl *ShoppingController) DeleteList(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.shoppingService.DeleteList(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrListNotFound) {
			errors.NotFound(c, errors.ListNotFound, "Shopping list not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "List deleted"})
}

// AddItem appends an item to a list
// POST /api/v1/shopping/lists/:id/items
func (ctrl *ShoppingController) AddItem(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid item data")
		return
	}

	item, err := ctrl.shoppingService.AddItem(householdID, listID, service.ListItemInput{
		Name:            req.Name,
		InventoryItemID: req.InventoryItemID,
		Quantity:        req.Quantity,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrListNotFound):
			errors.NotFound(c, errors.ListNotFound, "Shopping list not found")
		case stderrors.Is(err, service.ErrListItemUnnamed):
			errors.BadRequest(c, errors.ListItemUnnamed, "An item needs a name or an inventory item reference")
		case stderrors.Is(err, service.ErrInventoryItemNotFound):
			errors.NotFound(c, errors.InventoryItemNotFound, "Inventory item not found")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateItem patches one list item
// PATCH /api/v1/shopping/lists/:id/items/:itemID
func (ctrl *ShoppingController) UpdateItem(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	var req ShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid item data")
		return
	}

	item, err := ctrl.shoppingService.UpdateItem(householdID, listID, itemID, service.ListItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Checked:  req.Checked,
	})
	if err != nil {
		ctrl.respondItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem removes one list item
// DELETE /api/v1/shopping/lists/:id/items/:itemID
func (ctrl *ShoppingController) DeleteItem(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	if err := ctrl.shoppingService.DeleteItem(householdID, listID, itemID); err != nil {
		ctrl.respondItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// Generate fills the list from low-stock inventory
// POST /api/v1/shopping/lists/:id/generate
func (ctrl *ShoppingController) Generate(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := ctrl.shoppingService.Generate(householdID, listID)
	if err != nil {
		if stderrors.Is(err, service.ErrListNotFound) {
			errors.NotFound(c, errors.ListNotFound, "Shopping list not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (ctrl *ShoppingController) respondItemError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, service.ErrListNotFound):
		errors.NotFound(c, errors.ListNotFound, "Shopping list not found")
	case stderrors.Is(err, service.ErrListItemNotFound):
		errors.NotFound(c, errors.ListItemNotFound, "Shopping list item not found")
	default:
		errors.InternalError(c, "")
	}
}
