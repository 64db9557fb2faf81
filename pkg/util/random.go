package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewInviteCode returns an opaque invitation code.
func NewInviteCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// NewFeedToken returns an opaque iCal feed token.
func NewFeedToken() string {
	return uuid.New().String()
}
