package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

type TagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// Create adds a tag; names are unique per household
// POST /api/v1/tags
func (ctrl *TagController) Create(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid tag data")
		return
	}

	tag, err := ctrl.tagService.Create(householdID, req.Name, req.Color)
	if err != nil {
		if stderrors.Is(err, service.ErrTagAlreadyExists) {
			errors.Conflict(c, errors.TagAlreadyExists, "A tag with that name already exists")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// List lists the household's tags
// GET /api/v1/tags
func (ctrl *TagController) List(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	tags, err := ctrl.tagService.List(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// Get returns one tag
// GET /api/v1/tags/:id
func (ctrl *TagController) Get(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tag, err := ctrl.tagService.Get(householdID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrTagNotFound) {
			errors.NotFound(c, errors.TagNotFound, "Tag not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// Update patches a tag's name or color
// PATCH /api/v1/tags/:id
func (ctrl *TagController) Update(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid tag data")
		return
	}

	tag, err := ctrl.tagService.Update(householdID, id, req.Name, req.Color)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrTagNotFound):
			errors.NotFound(c, errors.TagNotFound, "Tag not found")
		case stderrors.Is(err, service.ErrTagAlreadyExists):
			errors.Conflict(c, errors.TagAlreadyExists, "A tag with that name already exists")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// Delete removes a tag and detaches it everywhere
// DELETE /api/v1/tags/:id
func (ctrl *TagController) Delete(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.tagService.Delete(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrTagNotFound) {
			errors.NotFound(c, errors.TagNotFound, "Tag not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}
