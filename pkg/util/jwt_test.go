package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateTokenPair(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		householdID   uint
		email         string
		role          string
		accessExpiry  time.Duration
		refreshExpiry time.Duration
	}{
		{
			name:          "member token",
			userID:        1,
			householdID:   1,
			email:         "test@example.com",
			role:          "member",
			accessExpiry:  15 * time.Minute,
			refreshExpiry: 30 * 24 * time.Hour,
		},
		{
			name:          "owner token",
			userID:        2,
			householdID:   7,
			email:         "owner@example.com",
			role:          "owner",
			accessExpiry:  15 * time.Minute,
			refreshExpiry: 30 * 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := GenerateTokenPair(
				tt.userID,
				tt.householdID,
				tt.email,
				tt.role,
				testSecret,
				tt.accessExpiry,
				tt.refreshExpiry,
			)
			require.NoError(t, err)
			require.NotNil(t, tokens)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
		})
	}
}

func TestValidateToken(t *testing.T) {
	tokens, err := GenerateTokenPair(123, 45, "test@example.com", "member", testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(tokens.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(123), claims.UserID)
	assert.Equal(t, uint(45), claims.HouseholdID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "access", claims.TokenType)

	refreshClaims, err := ValidateToken(tokens.RefreshToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.NotEmpty(t, refreshClaims.ID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokens, err := GenerateTokenPair(1, 1, "test@example.com", "member", testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.AccessToken, "some-other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	tokens, err := GenerateTokenPair(1, 1, "test@example.com", "member", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
