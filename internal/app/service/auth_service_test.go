package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryTokenStore replaces Redis in tests.
type memoryTokenStore struct {
	mu   sync.Mutex
	jtis map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{jtis: make(map[string]bool)}
}

func (s *memoryTokenStore) key(userID uint, jti string) string {
	return refreshKey(userID, jti)
}

func (s *memoryTokenStore) Save(_ context.Context, userID uint, jti string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jtis[s.key(userID, jti)] = true
	return nil
}

func (s *memoryTokenStore) Exists(_ context.Context, userID uint, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jtis[s.key(userID, jti)], nil
}

func (s *memoryTokenStore) Revoke(_ context.Context, userID uint, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jtis, s.key(userID, jti))
	return nil
}

func (s *memoryTokenStore) RevokeAll(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := fmt.Sprintf("refresh:%d:", userID)
	for k := range s.jtis {
		if strings.HasPrefix(k, prefix) {
			delete(s.jtis, k)
		}
	}
	return nil
}

func newAuthService(database *gorm.DB, tokens TokenStore) AuthService {
	return NewAuthService(
		repository.NewUserRepository(database),
		repository.NewHouseholdRepository(database),
		tokens,
		"test-secret",
		15*time.Minute,
		720*time.Hour,
	)
}

func TestRegisterCreatesHouseholdOwner(t *testing.T) {
	database := setupDB(t)
	svc := newAuthService(database, newMemoryTokenStore())

	user, pair, err := svc.Register("new@example.com", "hunter2hunter2", "New User", "Our Place")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, user.Role)
	assert.NotZero(t, user.HouseholdID)
	assert.NotEmpty(t, user.FeedToken)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	var household model.Household
	require.NoError(t, database.First(&household, user.HouseholdID).Error)
	assert.Equal(t, "Our Place", household.Name)

	_, _, err = svc.Register("new@example.com", "hunter2hunter2", "Clone", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	database := setupDB(t)
	svc := newAuthService(database, newMemoryTokenStore())

	_, _, err := svc.Register("login@example.com", "hunter2hunter2", "User", "")
	require.NoError(t, err)

	_, pair, err := svc.Login("login@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, _, err = svc.Login("login@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshIsOneTimeUse(t *testing.T) {
	database := setupDB(t)
	svc := newAuthService(database, newMemoryTokenStore())
	ctx := context.Background()

	_, pair, err := svc.Register("refresh@example.com", "hunter2hunter2", "User", "")
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	// The old token was consumed by the exchange.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The replacement still works.
	_, err = svc.Refresh(ctx, fresh.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	database := setupDB(t)
	svc := newAuthService(database, newMemoryTokenStore())
	ctx := context.Background()

	_, pair, err := svc.Register("logout@example.com", "hunter2hunter2", "User", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	database := setupDB(t)
	svc := newAuthService(database, newMemoryTokenStore())

	_, pair, err := svc.Register("mixup@example.com", "hunter2hunter2", "User", "")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.Error(t, err)
}

func TestRotateFeedToken(t *testing.T) {
	database := setupDB(t)
	svc := newAuthService(database, newMemoryTokenStore())

	user, _, err := svc.Register("feed@example.com", "hunter2hunter2", "User", "")
	require.NoError(t, err)

	before := user.FeedToken
	rotated, err := svc.RotateFeedToken(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before, rotated.FeedToken)
	assert.NotEmpty(t, rotated.FeedToken)
}

func TestFeedTokenReadableWithoutRotation(t *testing.T) {
	database := setupDB(t)
	svc := newAuthService(database, newMemoryTokenStore())

	user, _, err := svc.Register("feed@example.com", "hunter2hunter2", "User", "")
	require.NoError(t, err)

	// A client that lost the token can read it back; reading must not
	// invalidate existing calendar subscriptions.
	loaded, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.FeedToken, loaded.FeedToken)

	again, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, loaded.FeedToken, again.FeedToken)
}
