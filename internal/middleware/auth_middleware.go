package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/config"
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"github.com/lifeboard/lifeboard-backend/pkg/util"
)

// Context keys for the authenticated identity
const (
	UserIDKey      = "user_id"
	UserEmailKey   = "user_email"
	UserRoleKey    = "user_role"
	HouseholdIDKey = "household_id"
)

type AuthMiddleware struct {
	jwtSecret  string
	userRepo   repository.UserRepository
	bypassUser *model.User // nil unless the dev bypass is active
}

// NewAuthMiddleware builds the JWT middleware. When the auth bypass is
// enabled AND the environment is not production, requests without a
// token run as the configured fixture user. The fixture is resolved once
// by email; a missing fixture disables the bypass.
func NewAuthMiddleware(cfg *config.Config, userRepo repository.UserRepository) *AuthMiddleware {
	m := &AuthMiddleware{
		jwtSecret: cfg.JWT.Secret,
		userRepo:  userRepo,
	}

	if cfg.Auth.BypassEnabled {
		if cfg.Server.IsProduction() {
			logger.Warn("Auth bypass requested but environment is production, refusing", map[string]interface{}{
				"environment": cfg.Server.Environment,
			})
			return m
		}
		user, err := userRepo.FindByEmail(cfg.Auth.BypassEmail)
		if err != nil {
			logger.Warn("Auth bypass fixture user not found, bypass disabled", map[string]interface{}{
				"email": cfg.Auth.BypassEmail,
			})
			return m
		}
		m.bypassUser = user
		logger.Info("Auth bypass active", map[string]interface{}{
			"email":   user.Email,
			"user_id": user.ID,
		})
	}

	return m
}

// Authenticate validates the JWT access token (required).
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if m.bypassUser != nil {
				m.setIdentity(c, m.bypassUser.ID, m.bypassUser.HouseholdID, m.bypassUser.Email, m.bypassUser.Role)
				c.Next()
				return
			}
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Malformed authorization header")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session expired, please log in again")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			log.Warn("Refresh token used on protected endpoint", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			c.Abort()
			return
		}

		m.setIdentity(c, claims.UserID, claims.HouseholdID, claims.Email, model.UserRole(claims.Role))

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id":      claims.UserID,
			"household_id": claims.HouseholdID,
		})

		c.Next()
	}
}

// RequireOwner allows only the household owner through.
func (m *AuthMiddleware) RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, exists := GetUserRole(c)
		if !exists || role != model.RoleOwner {
			userID, _ := GetUserID(c)
			log.Warn("Owner-only endpoint denied", map[string]interface{}{
				"user_id": userID,
				"role":    role,
				"path":    c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzOwnerOnly, "Only the household owner can do this")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) setIdentity(c *gin.Context, userID, householdID uint, email string, role model.UserRole) {
	c.Set(UserIDKey, userID)
	c.Set(HouseholdIDKey, householdID)
	c.Set(UserEmailKey, email)
	c.Set(UserRoleKey, role)
}

// GetUserID extracts the user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetHouseholdID extracts the household scope from context
func GetHouseholdID(c *gin.Context) (uint, bool) {
	householdID, exists := c.Get(HouseholdIDKey)
	if !exists {
		return 0, false
	}
	return householdID.(uint), true
}

// GetUserRole extracts the user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(model.UserRole), true
}
