package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/config"
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/internal/db"
	"github.com/lifeboard/lifeboard-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testSecret
	return cfg
}

func protectedRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/owner", m.Authenticate(), m.RequireOwner(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func authDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })
	return database
}

func tokenFor(t *testing.T, userID, householdID uint, role string) *util.TokenPair {
	t.Helper()
	pair, err := util.GenerateTokenPair(userID, householdID, "mw@example.com", role, testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return pair
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(testConfig(), repository.NewUserRepository(authDB(t)))
	r := protectedRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(testConfig(), repository.NewUserRepository(authDB(t)))
	r := protectedRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateAcceptsAccessToken(t *testing.T) {
	m := NewAuthMiddleware(testConfig(), repository.NewUserRepository(authDB(t)))
	r := protectedRouter(m)
	pair := tokenFor(t, 42, 7, string(model.RoleMember))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	m := NewAuthMiddleware(testConfig(), repository.NewUserRepository(authDB(t)))
	r := protectedRouter(m)
	pair := tokenFor(t, 42, 7, string(model.RoleMember))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	m := NewAuthMiddleware(testConfig(), repository.NewUserRepository(authDB(t)))
	r := protectedRouter(m)

	pair, err := util.GenerateTokenPair(42, 7, "mw@example.com", string(model.RoleMember), testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestRequireOwnerBlocksMembers(t *testing.T) {
	m := NewAuthMiddleware(testConfig(), repository.NewUserRepository(authDB(t)))
	r := protectedRouter(m)

	member := tokenFor(t, 1, 7, string(model.RoleMember))
	req := httptest.NewRequest(http.MethodGet, "/owner", nil)
	req.Header.Set("Authorization", "Bearer "+member.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	owner := tokenFor(t, 2, 7, string(model.RoleOwner))
	req = httptest.NewRequest(http.MethodGet, "/owner", nil)
	req.Header.Set("Authorization", "Bearer "+owner.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBypassRefusedInProduction(t *testing.T) {
	database := authDB(t)
	household := &model.Household{Name: "Prod Household"}
	require.NoError(t, database.Create(household).Error)
	user := &model.User{
		HouseholdID:  household.ID,
		Email:        "dev@lifeboard.local",
		PasswordHash: "not-a-real-hash",
		Name:         "Fixture",
		Role:         model.RoleOwner,
		FeedToken:    util.NewFeedToken(),
	}
	require.NoError(t, database.Create(user).Error)

	cfg := testConfig()
	cfg.Server.Environment = "production"
	cfg.Auth.BypassEnabled = true
	cfg.Auth.BypassEmail = user.Email

	m := NewAuthMiddleware(cfg, repository.NewUserRepository(database))
	r := protectedRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBypassRunsAsFixtureUser(t *testing.T) {
	database := authDB(t)
	household := &model.Household{Name: "Dev Household"}
	require.NoError(t, database.Create(household).Error)
	user := &model.User{
		HouseholdID:  household.ID,
		Email:        "dev@lifeboard.local",
		PasswordHash: "not-a-real-hash",
		Name:         "Fixture",
		Role:         model.RoleOwner,
		FeedToken:    util.NewFeedToken(),
	}
	require.NoError(t, database.Create(user).Error)

	cfg := testConfig()
	cfg.Auth.BypassEnabled = true
	cfg.Auth.BypassEmail = user.Email

	m := NewAuthMiddleware(cfg, repository.NewUserRepository(database))
	r := protectedRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
