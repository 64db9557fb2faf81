package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
	"github.com/lifeboard/lifeboard-backend/internal/middleware"
)

// identity pulls the authenticated user and household out of the request
// context, responding 401 itself when absent.
func identity(c *gin.Context) (userID, householdID uint, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return 0, 0, false
	}
	householdID, exists = middleware.GetHouseholdID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return 0, 0, false
	}
	return userID, householdID, true
}

// pathID parses a uint path parameter, responding 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(parsed), true
}

// queryID parses an optional uint query parameter. Returns nil when
// absent, responds 400 and reports !ok on garbage.
func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid "+name+" parameter")
		return nil, false
	}
	id := uint(parsed)
	return &id, true
}
