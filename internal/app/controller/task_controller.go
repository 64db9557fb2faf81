package controller

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
)

type TaskController struct {
	taskService service.TaskService
}

func NewTaskController(taskService service.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

type CreateTaskRequest struct {
	Title string `json:"title" binding:"required"`
	Notes string `json:"notes"`
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time"`                    // HH:MM, empty for all-day
}

type UpdateTaskRequest struct {
	Title     string  `json:"title"`
	Notes     *string `json:"notes"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Completed *bool   `json:"completed"`
	Position  *int    `json:"position"`
}

type StepRequest struct {
	Label string `json:"label" binding:"required"`
}

type UpdateStepRequest struct {
	Label *string `json:"label"`
	Done  *bool   `json:"done"`
}

type ReorderRequest struct {
	StepIDs []uint `json:"step_ids" binding:"required"`
}

type SetTagsRequest struct {
	TagIDs []uint `json:"tag_ids"`
}

// Create adds a general calendar task
// POST /api/v1/tasks
func (ctrl *TaskController) Create(c *gin.Context) {
	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid task data")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Date must be YYYY-MM-DD")
		return
	}

	task, err := ctrl.taskService.Create(householdID, userID, req.Title, req.Notes, date, req.Time)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// List lists tasks within an optional date window
// GET /api/v1/tasks?from=&to=
func (ctrl *TaskController) List(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	from, to, ok := dateWindow(c)
	if !ok {
		return
	}

	tasks, err := ctrl.taskService.List(householdID, from, to)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// Get returns one task with steps and tags
// GET /api/v1/tasks/:id
func (ctrl *TaskController) Get(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := ctrl.taskService.Get(householdID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrTaskNotFound) {
			errors.NotFound(c, errors.TaskNotFound, "Task not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Update patches task fields
// PATCH /api/v1/tasks/:id
func (ctrl *TaskController) Update(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid task data")
		return
	}

	input := service.TaskInput{
		Title:     req.Title,
		Notes:     req.Notes,
		Time:      req.Time,
		Completed: req.Completed,
		Position:  req.Position,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "Date must be YYYY-MM-DD")
			return
		}
		input.Date = &date
	}

	task, err := ctrl.taskService.Update(householdID, id, input)
	if err != nil {
		if stderrors.Is(err, service.ErrTaskNotFound) {
			errors.NotFound(c, errors.TaskNotFound, "Task not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Delete removes a task; a trip task takes its trip cascade with it
// DELETE /api/v1/tasks/:id
func (ctrl *TaskController) Delete(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taskService.Delete(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrTaskNotFound) {
			errors.NotFound(c, errors.TaskNotFound, "Task not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// AddStep appends a checklist step
// POST /api/v1/tasks/:id/steps
func (ctrl *TaskController) AddStep(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid step data")
		return
	}

	step, err := ctrl.taskService.AddStep(householdID, taskID, req.Label)
	if err != nil {
		if stderrors.Is(err, service.ErrTaskNotFound) {
			errors.NotFound(c, errors.TaskNotFound, "Task not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"step": step})
}

// UpdateStep patches one step
// PATCH /api/v1/tasks/:id/steps/:stepID
func (ctrl *TaskController) UpdateStep(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stepID, ok := pathID(c, "stepID")
	if !ok {
		return
	}

	var req UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid step data")
		return
	}

	step, err := ctrl.taskService.UpdateStep(householdID, taskID, stepID, req.Label, req.Done)
	if err != nil {
		ctrl.respondStepError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

// DeleteStep removes one step
// DELETE /api/v1/tasks/:id/steps/:stepID
func (ctrl *TaskController) DeleteStep(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stepID, ok := pathID(c, "stepID")
	if !ok {
		return
	}

	if err := ctrl.taskService.DeleteStep(householdID, taskID, stepID); err != nil {
		ctrl.respondStepError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step deleted"})
}

// ReorderSteps persists a new step order
// PUT /api/v1/tasks/:id/steps/reorder
func (ctrl *TaskController) ReorderSteps(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid reorder data")
		return
	}

	task, err := ctrl.taskService.ReorderSteps(householdID, taskID, req.StepIDs)
	if err != nil {
		if stderrors.Is(err, service.ErrTaskNotFound) {
			errors.NotFound(c, errors.TaskNotFound, "Task not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// SetTags replaces the task's tags
// PUT /api/v1/tasks/:id/tags
func (ctrl *TaskController) SetTags(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid tag data")
		return
	}

	task, err := ctrl.taskService.SetTags(householdID, taskID, req.TagIDs)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrTaskNotFound):
			errors.NotFound(c, errors.TaskNotFound, "Task not found")
		case stderrors.Is(err, service.ErrTagNotFound):
			errors.NotFound(c, errors.TagNotFound, "Tag not found")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (ctrl *TaskController) respondStepError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, service.ErrTaskNotFound):
		errors.NotFound(c, errors.TaskNotFound, "Task not found")
	case stderrors.Is(err, service.ErrTaskStepNotFound):
		errors.NotFound(c, errors.TaskStepNotFound, "Step not found")
	default:
		errors.InternalError(c, "")
	}
}
