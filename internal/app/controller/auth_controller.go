package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
	"github.com/lifeboard/lifeboard-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Name          string `json:"name" binding:"required"`
	HouseholdName string `json:"household_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// Register creates a user and their household
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid registration data")
		return
	}

	user, tokens, err := ctrl.authService.Register(req.Email, req.Password, req.Name, req.HouseholdName)
	if err != nil {
		if stderrors.Is(err, service.ErrEmailAlreadyExists) {
			errors.Conflict(c, errors.AuthEmailAlreadyExists, "An account with this email already exists")
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login exchanges credentials for a token pair
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid login data")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidCredentials) {
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Refresh exchanges a refresh token for a new pair
// POST /api/v1/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Missing refresh token")
		return
	}

	tokens, err := ctrl.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if stderrors.Is(err, service.ErrTokenRevoked) {
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Session revoked, please log in again")
			return
		}
		errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid refresh token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout revokes the refresh token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Missing refresh token")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		errors.NotFound(c, errors.ResourceNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the authenticated user's profile
// PATCH /api/v1/auth/me
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid profile data")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.Name)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetFeedToken returns the current calendar feed token. The token is
// excluded from user JSON, so this is the only place a client can read
// it back without rotating (and breaking) existing subscriptions.
// GET /api/v1/auth/feed-token
func (ctrl *AuthController) GetFeedToken(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		errors.NotFound(c, errors.ResourceNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"feed_token": user.FeedToken})
}

// RotateFeedToken replaces the calendar feed token
// POST /api/v1/auth/feed-token/rotate
func (ctrl *AuthController) RotateFeedToken(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.RotateFeedToken(userID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"feed_token": user.FeedToken})
}
