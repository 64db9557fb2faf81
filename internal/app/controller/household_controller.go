package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
	"github.com/lifeboard/lifeboard-backend/internal/middleware"
)

type HouseholdController struct {
	householdService service.HouseholdService
	authService      service.AuthService
}

func NewHouseholdController(householdService service.HouseholdService, authService service.AuthService) *HouseholdController {
	return &HouseholdController{
		householdService: householdService,
		authService:      authService,
	}
}

type RenameHouseholdRequest struct {
	Name string `json:"name" binding:"required"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Get returns the authenticated user's household
// GET /api/v1/household
func (ctrl *HouseholdController) Get(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	household, err := ctrl.householdService.Get(householdID)
	if err != nil {
		errors.NotFound(c, errors.HouseholdNotFound, "Household not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"household": household})
}

// Rename renames the household (owner only)
// PATCH /api/v1/household
func (ctrl *HouseholdController) Rename(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req RenameHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid household data")
		return
	}

	household, err := ctrl.householdService.Rename(householdID, req.Name)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"household": household})
}

// Members lists household members
// GET /api/v1/household/members
func (ctrl *HouseholdController) Members(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	members, err := ctrl.householdService.Members(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"count":   len(members),
	})
}

// Invite invites a user by email
// POST /api/v1/household/invitations
func (ctrl *HouseholdController) Invite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid invitation data")
		return
	}

	invitation, err := ctrl.householdService.Invite(householdID, userID, req.Email)
	if err != nil {
		log.Error("Failed to create invitation", err, map[string]interface{}{
			"household_id": householdID,
		})
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invitation": invitation})
}

// ListInvitations lists this household's invitations
// GET /api/v1/household/invitations
func (ctrl *HouseholdController) ListInvitations(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	invitations, err := ctrl.householdService.ListInvitations(householdID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// Pending lists invitations addressed to the authenticated user
// GET /api/v1/household/invitations/pending
func (ctrl *HouseholdController) Pending(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		errors.NotFound(c, errors.ResourceNotFound, "User not found")
		return
	}

	invitations, err := ctrl.householdService.PendingForUser(user.Email)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// Accept accepts an invitation by code
// POST /api/v1/household/invitations/:code/accept
func (ctrl *HouseholdController) Accept(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		errors.NotFound(c, errors.ResourceNotFound, "User not found")
		return
	}

	household, err := ctrl.householdService.Accept(c.Param("code"), user)
	if err != nil {
		ctrl.respondInvitationError(c, err)
		return
	}

	// The household changed, so existing tokens carry a stale scope.
	c.JSON(http.StatusOK, gin.H{
		"household": household,
		"message":   "Invitation accepted, please log in again",
	})
}

// Decline declines an invitation by code
// POST /api/v1/household/invitations/:code/decline
func (ctrl *HouseholdController) Decline(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		errors.NotFound(c, errors.ResourceNotFound, "User not found")
		return
	}

	if err := ctrl.householdService.Decline(c.Param("code"), user); err != nil {
		ctrl.respondInvitationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation declined"})
}

// Leave moves the member out into a fresh household
// POST /api/v1/household/leave
func (ctrl *HouseholdController) Leave(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		errors.NotFound(c, errors.ResourceNotFound, "User not found")
		return
	}

	household, err := ctrl.householdService.Leave(user)
	if err != nil {
		if stderrors.Is(err, service.ErrOwnerCannotLeave) {
			errors.Conflict(c, errors.HouseholdOwnerCannotLeave, "The owner cannot leave their household")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"household": household,
		"message":   "Left household, please log in again",
	})
}

func (ctrl *HouseholdController) respondInvitationError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, service.ErrInvitationNotFound):
		errors.NotFound(c, errors.InvitationNotFound, "Invitation not found")
	case stderrors.Is(err, service.ErrInvitationNotYours):
		errors.Forbidden(c, "This invitation is addressed to a different email")
	case stderrors.Is(err, service.ErrInvitationNotPending):
		errors.Conflict(c, errors.InvitationNotPending, "This invitation was already answered")
	case stderrors.Is(err, service.ErrAlreadyInHousehold):
		errors.Conflict(c, errors.ResourceConflict, "You already belong to this household")
	case stderrors.Is(err, service.ErrHouseholdNotEmpty):
		errors.Conflict(c, errors.HouseholdNotEmpty, "Your current household still has other members")
	default:
		errors.InternalError(c, "")
	}
}
