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

type HabitController struct {
	habitService service.HabitService
}

func NewHabitController(habitService service.HabitService) *HabitController {
	return &HabitController{habitService: habitService}
}

type HabitRequest struct {
	Name     string `json:"name" binding:"required"`
	Schedule string `json:"schedule"`
}

type UpdateHabitRequest struct {
	Name     *string `json:"name"`
	Schedule *string `json:"schedule"`
	Active   *bool   `json:"active"`
}

type CompleteRequest struct {
	Date   string `json:"date"` // YYYY-MM-DD, defaults to today
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type UncompleteRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

// Create adds a habit
// POST /api/v1/habits
func (ctrl *HabitController) Create(c *gin.Context) {
	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req HabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid habit data")
		return
	}

	habit, err := ctrl.habitService.Create(householdID, userID, req.Name, req.Schedule)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

// List lists the household's habits
// GET /api/v1/habits
func (ctrl *HabitController) List(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	habits, err := ctrl.habitService.List(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// Get returns one habit
// GET /api/v1/habits/:id
func (ctrl *HabitController) Get(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	habit, err := ctrl.habitService.Get(householdID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrHabitNotFound) {
			errors.NotFound(c, errors.HabitNotFound, "Habit not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// Update patches a habit
// PATCH /api/v1/habits/:id
func (ctrl *HabitController) Update(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid habit data")
		return
	}

	habit, err := ctrl.habitService.Update(householdID, id, req.Name, req.Schedule, req.Active)
	if err != nil {
		if stderrors.Is(err, service.ErrHabitNotFound) {
			errors.NotFound(c, errors.HabitNotFound, "Habit not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// Delete removes a habit and its completions
// DELETE /api/v1/habits/:id
func (ctrl *HabitController) Delete(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.habitService.Delete(householdID, id); err != nil {
		if stderrors.Is(err, service.ErrHabitNotFound) {
			errors.NotFound(c, errors.HabitNotFound, "Habit not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted"})
}

// Complete records a completion for the day
// POST /api/v1/habits/:id/complete
func (ctrl *HabitController) Complete(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid completion data")
		return
	}

	day, ok := parseDayOrToday(c, req.Date)
	if !ok {
		return
	}

	completion, err := ctrl.habitService.Complete(householdID, id, day, model.CompletionStatus(req.Status), req.Reason)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrHabitNotFound):
			errors.NotFound(c, errors.HabitNotFound, "Habit not found")
		case stderrors.Is(err, service.ErrHabitAlreadyCompleted):
			errors.Conflict(c, errors.HabitAlreadyCompleted, "This habit already has a completion for that day")
		case stderrors.Is(err, service.ErrSkipReasonRequired):
			errors.BadRequest(c, errors.HabitSkipReasonRequired, "Skipping a habit requires a reason")
		case stderrors.Is(err, service.ErrInvalidCompletionState):
			errors.BadRequest(c, errors.ValidationInvalidInput, "Status must be completed or skipped")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"completion": completion})
}

// Uncomplete removes the day's completion
// POST /api/v1/habits/:id/uncomplete
func (ctrl *HabitController) Uncomplete(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UncompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid data")
		return
	}

	day, ok := parseDayOrToday(c, req.Date)
	if !ok {
		return
	}

	if err := ctrl.habitService.Uncomplete(householdID, id, day); err != nil {
		switch {
		case stderrors.Is(err, service.ErrHabitNotFound):
			errors.NotFound(c, errors.HabitNotFound, "Habit not found")
		case stderrors.Is(err, service.ErrCompletionNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "No completion recorded for that day")
		default:
			errors.InternalError(c, "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Completion removed"})
}

// Completions lists completions within an optional window
// GET /api/v1/habits/:id/completions?from=&to=
func (ctrl *HabitController) Completions(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	from, to, ok := dateWindow(c)
	if !ok {
		return
	}

	completions, err := ctrl.habitService.Completions(householdID, id, from, to)
	if err != nil {
		if stderrors.Is(err, service.ErrHabitNotFound) {
			errors.NotFound(c, errors.HabitNotFound, "Habit not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"completions": completions})
}

// Stats returns the read-time streak aggregation
// GET /api/v1/habits/:id/stats
func (ctrl *HabitController) Stats(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	stats, err := ctrl.habitService.Stats(householdID, id, time.Now())
	if err != nil {
		if stderrors.Is(err, service.ErrHabitNotFound) {
			errors.NotFound(c, errors.HabitNotFound, "Habit not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func parseDayOrToday(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now(), true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return parsed, true
}
