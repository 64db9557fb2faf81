package controller

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
	"github.com/lifeboard/lifeboard-backend/internal/export"
	"gorm.io/gorm"
)

// CalendarController serves the read-only iCalendar feed. The route is
// public; the per-user feed token in the path is the only credential, so
// the feed works in calendar apps that cannot send headers.
type CalendarController struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

func NewCalendarController(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *CalendarController {
	return &CalendarController{userRepo: userRepo, taskRepo: taskRepo}
}

// Feed renders the household's tasks as an .ics file
// GET /api/v1/calendar/feed/:token
func (ctrl *CalendarController) Feed(c *gin.Context) {
	token := strings.TrimSuffix(c.Param("token"), ".ics")
	if token == "" {
		errors.NotFound(c, errors.ResourceNotFound, "Feed not found")
		return
	}

	user, err := ctrl.userRepo.FindByFeedToken(token)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Feed not found")
			return
		}
		errors.InternalError(c, "")
		return
	}

	tasks, err := ctrl.taskRepo.List(user.HouseholdID, nil, nil)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="lifeboard.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(export.WriteCalendar(tasks, time.Now())))
}
