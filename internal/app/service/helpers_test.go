package service

import (
	"testing"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/db"
	"github.com/lifeboard/lifeboard-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })
	return database
}

// seedUser creates a household with one owner user.
func seedUser(t *testing.T, database *gorm.DB, email string) *model.User {
	t.Helper()
	household := &model.Household{Name: "Test Household"}
	require.NoError(t, database.Create(household).Error)

	user := &model.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Name:         "Test User",
		HouseholdID:  household.ID,
		Role:         model.RoleOwner,
		FeedToken:    util.NewFeedToken(),
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
