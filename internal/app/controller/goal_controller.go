package controller

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
)

type GoalController struct {
	goalService service.GoalService
}

func NewGoalController(goalService service.GoalService) *GoalController {
	return &GoalController{goalService: goalService}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type GoalRequest struct {
	Title      string  `json:"title"`
	CategoryID *uint   `json:"category_id"`
	TargetDate *string `json:"target_date"` // YYYY-MM-DD
	Status     *string `json:"status"`
	Progress   *int    `json:"progress"`
	Note       string  `json:"note"`
}

type MilestoneRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateMilestoneRequest struct {
	Title *string `json:"title"`
	Done  *bool   `json:"done"`
}

// CreateCategory creates a goal category
// POST /api/v1/goals/categories
func (ctrl *GoalController) CreateCategory(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.goalService.CreateCategory(householdID, req.Name)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories lists goal categories
// GET /api/v1/goals/categories
func (ctrl *GoalController) ListCategories(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	categories, err := ctrl.goalService.ListCategories(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// RenameCategory renames a category
// PATCH /api/v1/goals/categories/:id
func (ctrl *GoalController) RenameCategory(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.goalService.RenameCategory(householdID, id, req.Name)
	if err != nil {
		if stderrors.Is(err, service.ErrGoalCategoryNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Category not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category, detaching its goals
// DELETE /api/v1/goals/categories/:id
func (ctrl *GoalController) DeleteCategory(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.goalService.DeleteCategory(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrGoalCategoryNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Category not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// Create adds a goal
// POST /api/v1/goals
func (ctrl *GoalController) Create(c *gin.Context) {
	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid goal data")
		return
	}

	input, ok := ctrl.buildInput(c, req)
	if !ok {
		return
	}

	goal, err := ctrl.goalService.Create(householdID, userID, input)
	if err != nil {
		if stderrors.Is(err, service.ErrGoalCategoryNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Category not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// List lists goals with optional category/status filters
// GET /api/v1/goals?category_id=&status=
func (ctrl *GoalController) List(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	categoryID, ok := queryID(c, "category_id")
	if !ok {
		return
	}

	var status *model.GoalStatus
	if raw := c.Query("status"); raw != "" {
		parsed := model.GoalStatus(raw)
		status = &parsed
	}

	goals, err := ctrl.goalService.List(householdID, categoryID, status)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// Get returns one goal with milestones and tags
// GET /api/v1/goals/:id
func (ctrl *GoalController) Get(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	goal, err := ctrl.goalService.Get(householdID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrGoalNotFound) {
			errors.NotFound(c, errors.GoalNotFound, "Goal not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Update patches a goal, appending history on status/progress changes
// PATCH /api/v1/goals/:id
func (ctrl *GoalController) Update(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid goal data")
		return
	}

	input, ok := ctrl.buildInput(c, req)
	if !ok {
		return
	}

	goal, err := ctrl.goalService.Update(householdID, id, input)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrGoalNotFound):
			errors.NotFound(c, errors.GoalNotFound, "Goal not found")
		case stderrors.Is(err, service.ErrGoalCategoryNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Category not found")
		case stderrors.Is(err, service.ErrInvalidProgress):
			errors.BadRequest(c, errors.ValidationInvalidInput, "Progress must be between 0 and 100")
		case stderrors.Is(err, service.ErrInvalidGoalStatus):
			errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid goal status")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Delete removes a goal with milestones and history
// DELETE /api/v1/goals/:id
func (ctrl *GoalController) Delete(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.goalService.Delete(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrGoalNotFound) {
			errors.NotFound(c, errors.GoalNotFound, "Goal not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}

// AddMilestone appends a milestone
// POST /api/v1/goals/:id/milestones
func (ctrl *GoalController) AddMilestone(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	goalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid milestone data")
		return
	}

	milestone, err := ctrl.goalService.AddMilestone(householdID, goalID, req.Title)
	if err != nil {
		if stderrors.Is(err, service.ErrGoalNotFound) {
			errors.NotFound(c, errors.GoalNotFound, "Goal not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"milestone": milestone})
}

// UpdateMilestone patches one milestone
// PATCH /api/v1/goals/:id/milestones/:milestoneID
func (ctrl *GoalController) UpdateMilestone(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	goalID, ok := pathID(c, "id")
	if !ok {
		return
	}
	milestoneID, ok := pathID(c, "milestoneID")
	if !ok {
		return
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid milestone data")
		return
	}

	milestone, err := ctrl.goalService.UpdateMilestone(householdID, goalID, milestoneID, req.Title, req.Done)
	if err != nil {
		ctrl.respondMilestoneError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestone": milestone})
}

// DeleteMilestone removes one milestone
// DELETE /api/v1/goals/:id/milestones/:milestoneID
func (ctrl *GoalController) DeleteMilestone(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	goalID, ok := pathID(c, "id")
	if !ok {
		return
	}
	milestoneID, ok := pathID(c, "milestoneID")
	if !ok {
		return
	}

	if err := ctrl.goalService.DeleteMilestone(householdID, goalID, milestoneID); err != nil {
		ctrl.respondMilestoneError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted"})
}

// History returns the goal's append-only change log
// GET /api/v1/goals/:id/history
func (ctrl *GoalController) History(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	goalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	history, err := ctrl.goalService.History(householdID, goalID)
	if err != nil {
		if stderrors.Is(err, service.ErrGoalNotFound) {
			errors.NotFound(c, errors.GoalNotFound, "Goal not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// SetTags replaces the goal's tags
// PUT /api/v1/goals/:id/tags
func (ctrl *GoalController) SetTags(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	goalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid tag data")
		return
	}

	goal, err := ctrl.goalService.SetTags(householdID, goalID, req.TagIDs)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrGoalNotFound):
			errors.NotFound(c, errors.GoalNotFound, "Goal not found")
		case stderrors.Is(err, service.ErrTagNotFound):
			errors.NotFound(c, errors.TagNotFound, "Tag not found")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func (ctrl *GoalController) buildInput(c *gin.Context, req GoalRequest) (service.GoalInput, bool) {
	input := service.GoalInput{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Progress:   req.Progress,
		Note:       req.Note,
	}
	if req.Status != nil {
		status := model.GoalStatus(*req.Status)
		input.Status = &status
	}
	if req.TargetDate != nil {
		date, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "target_date must be YYYY-MM-DD")
			return input, false
		}
		input.TargetDate = &date
	}
	return input, true
}

func (ctrl *GoalController) respondMilestoneError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, service.ErrGoalNotFound):
		errors.NotFound(c, errors.GoalNotFound, "Goal not found")
	case stderrors.Is(err, service.ErrMilestoneNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Milestone not found")
	default:
		errors.InternalError(c, "")
	}
}
