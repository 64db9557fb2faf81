package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

type PreferencesRequest struct {
	EnabledTypes []string `json:"enabled_types"`
}

// List lists the user's notifications, newest first
// GET /api/v1/notifications?unread_only=&limit=&offset=
func (ctrl *NotificationController) List(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread_only") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifications, err := ctrl.notificationService.List(userID, unreadOnly, limit, offset)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// UnreadCount returns the number of unread notifications
// GET /api/v1/notifications/unread-count
func (ctrl *NotificationController) UnreadCount(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	count, err := ctrl.notificationService.UnreadCount(userID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkRead marks one notification as read
// POST /api/v1/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.notificationService.MarkRead(userID, id); err != nil {
		if stderrors.Is(err, service.ErrNotificationNotFound) {
			errors.NotFound(c, errors.NotificationNotFound, "Notification not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification as read
// POST /api/v1/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	if err := ctrl.notificationService.MarkAllRead(userID); err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// Delete removes one notification
// DELETE /api/v1/notifications/:id
func (ctrl *NotificationController) Delete(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.notificationService.Delete(userID, id); err != nil {
		if stderrors.Is(err, service.ErrNotificationNotFound) {
			errors.NotFound(c, errors.NotificationNotFound, "Notification not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// GetPreferences returns the user's notification type preferences
// GET /api/v1/notifications/preferences
func (ctrl *NotificationController) GetPreferences(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	prefs, err := ctrl.notificationService.GetPreferences(userID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// UpdatePreferences replaces the set of enabled notification types
// PUT /api/v1/notifications/preferences
func (ctrl *NotificationController) UpdatePreferences(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid preferences data")
		return
	}

	prefs, err := ctrl.notificationService.UpdatePreferences(userID, req.EnabledTypes)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidNotifType) {
			errors.BadRequest(c, errors.ValidationInvalidInput, "Unknown notification type")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
