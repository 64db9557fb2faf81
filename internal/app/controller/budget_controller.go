package controller

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
	"github.com/lifeboard/lifeboard-backend/internal/export"
	"github.com/lifeboard/lifeboard-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type BudgetController struct {
	budgetService service.BudgetService
}

func NewBudgetController(budgetService service.BudgetService) *BudgetController {
	return &BudgetController{budgetService: budgetService}
}

type CreateSourceRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind"`
}

type CreateEntryRequest struct {
	SourceID    uint            `json:"source_id" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	EntryType   string          `json:"entry_type"`
	Date        string          `json:"date" binding:"required"` // YYYY-MM-DD
}

type UpdateEntryRequest struct {
	SourceID    uint            `json:"source_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	EntryType   string          `json:"entry_type"`
	Date        string          `json:"date"`
}

// CreateSource creates a manual budget source
// POST /api/v1/budget/sources
func (ctrl *BudgetController) CreateSource(c *gin.Context) {
	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid source data")
		return
	}

	source, err := ctrl.budgetService.CreateSource(householdID, userID, req.Name, model.BudgetSourceKind(req.Kind))
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"source": source})
}

// ListSources lists the household's budget sources
// GET /api/v1/budget/sources
func (ctrl *BudgetController) ListSources(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	sources, err := ctrl.budgetService.ListSources(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

// UpdateSource renames a source
// PATCH /api/v1/budget/sources/:id
func (ctrl *BudgetController) UpdateSource(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid source data")
		return
	}

	source, err := ctrl.budgetService.UpdateSource(householdID, id, req.Name)
	if err != nil {
		if stderrors.Is(err, service.ErrSourceNotFound) {
			errors.NotFound(c, errors.BudgetSourceNotFound, "Budget source not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": source})
}

// DeleteSource removes a source
// DELETE /api/v1/budget/sources/:id
func (ctrl *BudgetController) DeleteSource(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.budgetService.DeleteSource(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrSourceNotFound) {
			errors.NotFound(c, errors.BudgetSourceNotFound, "Budget source not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Source deleted"})
}

// SetSourceTags replaces the source's tags
// PUT /api/v1/budget/sources/:id/tags
func (ctrl *BudgetController) SetSourceTags(c *gin.Context) {
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

	source, err := ctrl.budgetService.SetSourceTags(householdID, id, req.TagIDs)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrSourceNotFound):
			errors.NotFound(c, errors.BudgetSourceNotFound, "Budget source not found")
		case stderrors.Is(err, service.ErrTagNotFound):
			errors.NotFound(c, errors.TagNotFound, "Tag not found")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": source})
}

// CreateEntry records a manual ledger line
// POST /api/v1/budget/entries
func (ctrl *BudgetController) CreateEntry(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid entry data")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Date must be YYYY-MM-DD")
		return
	}

	entry, err := ctrl.budgetService.CreateEntry(householdID, service.EntryInput{
		SourceID:    req.SourceID,
		Description: req.Description,
		Amount:      req.Amount,
		EntryType:   model.EntryType(req.EntryType),
		Date:        date,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrSourceNotFound) {
			errors.NotFound(c, errors.BudgetSourceNotFound, "Budget source not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// ListEntries lists entries, optionally filtered by source and window
// GET /api/v1/budget/entries?source_id=&from=&to=
func (ctrl *BudgetController) ListEntries(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	sourceID, ok := queryID(c, "source_id")
	if !ok {
		return
	}
	from, to, ok := dateWindow(c)
	if !ok {
		return
	}

	entries, err := ctrl.budgetService.ListEntries(householdID, sourceID, from, to)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// UpdateEntry patches an entry
// PATCH /api/v1/budget/entries/:id
func (ctrl *BudgetController) UpdateEntry(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid entry data")
		return
	}

	input := service.EntryInput{
		SourceID:    req.SourceID,
		Description: req.Description,
		Amount:      req.Amount,
		EntryType:   model.EntryType(req.EntryType),
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "Date must be YYYY-MM-DD")
			return
		}
		input.Date = date
	}

	entry, err := ctrl.budgetService.UpdateEntry(householdID, id, input)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrBudgetEntryNotFound):
			errors.NotFound(c, errors.BudgetEntryNotFound, "Budget entry not found")
		case stderrors.Is(err, service.ErrSourceNotFound):
			errors.NotFound(c, errors.BudgetSourceNotFound, "Budget source not found")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeleteEntry removes an entry unless a purchase still references it
// DELETE /api/v1/budget/entries/:id
func (ctrl *BudgetController) DeleteEntry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.budgetService.DeleteEntry(householdID, id); err != nil {
		switch {
		case stderrors.Is(err, service.ErrBudgetEntryNotFound):
			errors.NotFound(c, errors.BudgetEntryNotFound, "Budget entry not found")
		case stderrors.Is(err, service.ErrEntryHasPurchase):
			errors.Conflict(c, errors.BudgetEntryHasPurchase, "Delete the linked purchase instead")
		default:
			log.Error("Failed to delete entry", err, map[string]interface{}{
				"entry_id": id,
			})
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// Summary aggregates income/expense totals per source
// GET /api/v1/budget/summary?from=&to=
func (ctrl *BudgetController) Summary(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	from, to, ok := dateWindow(c)
	if !ok {
		return
	}

	summary, err := ctrl.budgetService.Summary(householdID, from, to)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ExportCSV streams the ledger as CSV
// GET /api/v1/budget/entries/export/csv?from=&to=
func (ctrl *BudgetController) ExportCSV(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	from, to, ok := dateWindow(c)
	if !ok {
		return
	}

	entries, err := ctrl.budgetService.ListEntries(householdID, nil, from, to)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("budget-entries-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteEntriesCSV(c.Writer, entries); err != nil {
		middleware.GetLoggerFromContext(c).Error("CSV export failed", err, nil)
	}
}

// ExportXLSX streams the ledger as a spreadsheet
// GET /api/v1/budget/entries/export/xlsx?from=&to=
func (ctrl *BudgetController) ExportXLSX(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	from, to, ok := dateWindow(c)
	if !ok {
		return
	}

	entries, err := ctrl.budgetService.ListEntries(householdID, nil, from, to)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("budget-entries-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := export.WriteEntriesXLSX(c.Writer, entries); err != nil {
		middleware.GetLoggerFromContext(c).Error("XLSX export failed", err, nil)
	}
}

// dateWindow parses optional from/to query parameters (YYYY-MM-DD).
func dateWindow(c *gin.Context) (from, to *time.Time, ok bool) {
	parse := func(name string) (*time.Time, bool) {
		raw := c.Query(name)
		if raw == "" {
			return nil, true
		}
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, name+" must be YYYY-MM-DD")
			return nil, false
		}
		return &parsed, true
	}

	if from, ok = parse("from"); !ok {
		return nil, nil, false
	}
	if to, ok = parse("to"); !ok {
		return nil, nil, false
	}
	return from, to, true
}
