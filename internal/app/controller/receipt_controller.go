package controller

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
	"github.com/lifeboard/lifeboard-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type ReceiptController struct {
	receiptService service.ReceiptService
}

func NewReceiptController(receiptService service.ReceiptService) *ReceiptController {
	return &ReceiptController{receiptService: receiptService}
}

type CreateTripRequest struct {
	Date   string              `json:"date" binding:"required"` // YYYY-MM-DD
	Driver string              `json:"driver"`
	Notes  string              `json:"notes"`
	Stops  []service.StopInput `json:"stops" binding:"required,min=1"`
}

type UpdateTripRequest struct {
	Date   *string `json:"date"`
	Driver *string `json:"driver"`
	Notes  *string `json:"notes"`
}

type CreatePurchaseRequest struct {
	Brand         string          `json:"brand"`
	Name          string          `json:"name" binding:"required"`
	Count         int             `json:"count"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Taxed         bool            `json:"taxed"`
	BudgetEntryID *uint           `json:"budget_entry_id"`
}

// CreateTrip creates a trip with its stops and linked calendar task
// POST /api/v1/receipts/trips
func (ctrl *ReceiptController) CreateTrip(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid trip data")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Date must be YYYY-MM-DD")
		return
	}

	trip, err := ctrl.receiptService.CreateTrip(householdID, userID, service.CreateTripInput{
		Date:   date,
		Driver: req.Driver,
		Notes:  req.Notes,
		Stops:  req.Stops,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrStopStoreRequired) {
			errors.BadRequest(c, errors.TripStoreRequired, "Every stop needs a store")
			return
		}
		if stderrors.Is(err, service.ErrStoreNotFound) {
			errors.NotFound(c, errors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Failed to create trip", err, map[string]interface{}{
			"household_id": householdID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// ListTrips lists the household's trips
// GET /api/v1/receipts/trips
func (ctrl *ReceiptController) ListTrips(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	trips, err := ctrl.receiptService.ListTrips(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trips": trips,
		"count": len(trips),
	})
}

// GetTrip returns one trip with stops and purchases
// GET /api/v1/receipts/trips/:id
func (ctrl *ReceiptController) GetTrip(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	trip, err := ctrl.receiptService.GetTrip(householdID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrTripNotFound) {
			errors.NotFound(c, errors.TripNotFound, "Trip not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// UpdateTrip patches trip fields
// PATCH /api/v1/receipts/trips/:id
func (ctrl *ReceiptController) UpdateTrip(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid trip data")
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "Date must be YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	trip, err := ctrl.receiptService.UpdateTrip(householdID, id, date, req.Driver, req.Notes)
	if err != nil {
		if stderrors.Is(err, service.ErrTripNotFound) {
			errors.NotFound(c, errors.TripNotFound, "Trip not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// DeleteTrip removes a trip and its whole cascade
// DELETE /api/v1/receipts/trips/:id
func (ctrl *ReceiptController) DeleteTrip(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.receiptService.DeleteTrip(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrTripNotFound) {
			errors.NotFound(c, errors.TripNotFound, "Trip not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}

// AddStop appends a stop to a trip
// POST /api/v1/receipts/trips/:id/stops
func (ctrl *ReceiptController) AddStop(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.StopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid stop data")
		return
	}

	stop, err := ctrl.receiptService.AddStop(householdID, id, req)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrTripNotFound):
			errors.NotFound(c, errors.TripNotFound, "Trip not found")
		case stderrors.Is(err, service.ErrStopStoreRequired):
			errors.BadRequest(c, errors.TripStoreRequired, "A stop needs a store")
		case stderrors.Is(err, service.ErrStoreNotFound):
			errors.NotFound(c, errors.StoreNotFound, "Store not found")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stop": stop})
}

// DeleteStop removes a stop, its purchases, and their entries
// DELETE /api/v1/receipts/stops/:id
func (ctrl *ReceiptController) DeleteStop(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.receiptService.DeleteStop(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrStopNotFound) {
			errors.NotFound(c, errors.StopNotFound, "Stop not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stop deleted"})
}

// CreatePurchase records a line item with its budget entry
// POST /api/v1/receipts/stops/:id/purchases
func (ctrl *ReceiptController) CreatePurchase(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, householdID, ok := identity(c)
	if !ok {
		return
	}
	stopID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid purchase data")
		return
	}

	purchase, err := ctrl.receiptService.CreatePurchase(householdID, userID, stopID, service.PurchaseInput{
		Brand:         req.Brand,
		Name:          req.Name,
		Count:         req.Count,
		Unit:          req.Unit,
		Price:         req.Price,
		Taxed:         req.Taxed,
		BudgetEntryID: req.BudgetEntryID,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrStopNotFound):
			errors.NotFound(c, errors.StopNotFound, "Stop not found")
		case stderrors.Is(err, service.ErrEntryNotFound):
			errors.NotFound(c, errors.BudgetEntryNotFound, "Budget entry not found")
		case stderrors.Is(err, service.ErrEntryAlreadyLinked):
			errors.Conflict(c, errors.ResourceConflict, "Budget entry already backs another purchase")
		default:
			log.Error("Failed to create purchase", err, map[string]interface{}{
				"stop_id": stopID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"purchase": purchase})
}

// UpdatePurchase patches a purchase, keeping the entry amount in sync
// PATCH /api/v1/receipts/purchases/:id
func (ctrl *ReceiptController) UpdatePurchase(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid purchase data")
		return
	}

	purchase, err := ctrl.receiptService.UpdatePurchase(householdID, id, service.PurchaseInput{
		Brand: req.Brand,
		Name:  req.Name,
		Count: req.Count,
		Unit:  req.Unit,
		Price: req.Price,
		Taxed: req.Taxed,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrPurchaseNotFound) {
			errors.NotFound(c, errors.PurchaseNotFound, "Purchase not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

// DeletePurchase removes a purchase together with its entry
// DELETE /api/v1/receipts/purchases/:id
func (ctrl *ReceiptController) DeletePurchase(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.receiptService.DeletePurchase(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrPurchaseNotFound) {
			errors.NotFound(c, errors.PurchaseNotFound, "Purchase not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted"})
}

// ListStores lists the household's stores
// GET /api/v1/receipts/stores
func (ctrl *ReceiptController) ListStores(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	stores, err := ctrl.receiptService.ListStores(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// Brands returns distinct purchase brands for autocomplete
// GET /api/v1/receipts/brands
func (ctrl *ReceiptController) Brands(c *gin.Context) {
	ctrl.distinct(c, ctrl.receiptService.Brands, "brands")
}

// Units returns distinct purchase units for autocomplete
// GET /api/v1/receipts/units
func (ctrl *ReceiptController) Units(c *gin.Context) {
	ctrl.distinct(c, ctrl.receiptService.Units, "units")
}

// Drivers returns distinct trip drivers for autocomplete
// GET /api/v1/receipts/drivers
func (ctrl *ReceiptController) Drivers(c *gin.Context) {
	ctrl.distinct(c, ctrl.receiptService.Drivers, "drivers")
}

func (ctrl *ReceiptController) distinct(c *gin.Context, fetch func(uint) ([]string, error), key string) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	values, err := fetch(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{key: values})
}
