package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
)

type NotebookController struct {
	notebookService service.NotebookService
}

func NewNotebookController(notebookService service.NotebookService) *NotebookController {
	return &NotebookController{notebookService: notebookService}
}

type NotebookRequest struct {
	Title string `json:"title" binding:"required"`
}

type PageRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

type UpdatePageRequest struct {
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	Position *int    `json:"position"`
}

// Create creates a notebook
// POST /api/v1/notebooks
func (ctrl *NotebookController) Create(c *gin.Context) {
	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req NotebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid notebook data")
		return
	}

	notebook, err := ctrl.notebookService.Create(householdID, userID, req.Title)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notebook": notebook})
}

// List lists the household's notebooks
// GET /api/v1/notebooks
func (ctrl *NotebookController) List(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	notebooks, err := ctrl.notebookService.List(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notebooks": notebooks})
}

// Get returns one notebook with pages in position order
// GET /api/v1/notebooks/:id
func (ctrl *NotebookController) Get(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	notebook, err := ctrl.notebookService.Get(householdID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrNotebookNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Notebook not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notebook": notebook})
}

// Rename renames a notebook
// PATCH /api/v1/notebooks/:id
func (ctrl *NotebookController) Rename(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req NotebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid notebook data")
		return
	}

	notebook, err := ctrl.notebookService.Rename(householdID, id, req.Title)
	if err != nil {
		if stderrors.Is(err, service.ErrNotebookNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Notebook not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notebook": notebook})
}

// Delete soft-deletes a notebook
// DELETE /api/v1/notebooks/:id
func (ctrl *NotebookController) Delete(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.notebookService.Delete(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrNotebookNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Notebook not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notebook deleted"})
}

// AddPage appends a page at the end of the notebook
// POST /api/v1/notebooks/:id/pages
func (ctrl *NotebookController) AddPage(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	notebookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid page data")
		return
	}

	page, err := ctrl.notebookService.AddPage(householdID, notebookID, req.Title, req.Body)
	if err != nil {
		if stderrors.Is(err, service.ErrNotebookNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Notebook not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"page": page})
}

// UpdatePage patches a page
// PATCH /api/v1/notebooks/:id/pages/:pageID
func (ctrl *NotebookController) UpdatePage(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	notebookID, ok := pathID(c, "id")
	if !ok {
		return
	}
	pageID, ok := pathID(c, "pageID")
	if !ok {
		return
	}

	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid page data")
		return
	}

	page, err := ctrl.notebookService.UpdatePage(householdID, notebookID, pageID, req.Title, req.Body, req.Position)
	if err != nil {
		ctrl.respondPageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// DeletePage removes a page
// DELETE /api/v1/notebooks/:id/pages/:pageID
func (ctrl *NotebookController) DeletePage(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	notebookID, ok := pathID(c, "id")
	if !ok {
		return
	}
	pageID, ok := pathID(c, "pageID")
	if !ok {
		return
	}

	if err := ctrl.notebookService.DeletePage(householdID, notebookID, pageID); err != nil {
		ctrl.respondPageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page deleted"})
}

func (ctrl *NotebookController) respondPageError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, service.ErrNotebookNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Notebook not found")
	case stderrors.Is(err, service.ErrPageNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Page not found")
	default:
		errors.InternalError(c, "")
	}
}
