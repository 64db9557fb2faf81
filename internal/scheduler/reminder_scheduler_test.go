package scheduler

import (
	"testing"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/db"
	"github.com/lifeboard/lifeboard-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestScheduler(t *testing.T) (*ReminderScheduler, *gorm.DB) {
	t.Helper()
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	notificationRepo := repository.NewNotificationRepository(database)
	s := NewReminderScheduler(
		repository.NewTaskRepository(database),
		repository.NewHabitRepository(database),
		repository.NewInventoryRepository(database),
		repository.NewUserRepository(database),
		notificationRepo,
		service.NewNotificationService(notificationRepo),
	)
	return s, database
}

func seedMember(t *testing.T, database *gorm.DB, email string) *model.User {
	t.Helper()
	household := &model.Household{Name: "Test Household"}
	require.NoError(t, database.Create(household).Error)
	user := &model.User{
		HouseholdID:  household.ID,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Name:         "Member",
		Role:         model.RoleOwner,
		FeedToken:    util.NewFeedToken(),
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func notificationsFor(t *testing.T, database *gorm.DB, userID uint) []model.Notification {
	t.Helper()
	var notifications []model.Notification
	require.NoError(t, database.Where("user_id = ?", userID).Find(&notifications).Error)
	return notifications
}

func TestRunSendsDueTaskReminder(t *testing.T) {
	s, database := newTestScheduler(t)
	user := seedMember(t, database, "reminders@example.com")

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	require.NoError(t, database.Create(&model.Task{
		HouseholdID: user.HouseholdID,
		UserID:      user.ID,
		Title:       "Renew car tags",
		Date:        today,
		TaskType:    model.TaskGeneral,
	}).Error)
	// Completed tasks stay quiet.
	require.NoError(t, database.Create(&model.Task{
		HouseholdID: user.HouseholdID,
		UserID:      user.ID,
		Title:       "Already done",
		Date:        today,
		TaskType:    model.TaskGeneral,
		Completed:   true,
	}).Error)

	s.Run(now)

	notifications := notificationsFor(t, database, user.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationTaskDue, notifications[0].Type)
	assert.Contains(t, notifications[0].Title, "Renew car tags")
}

func TestRunSkipsCompletedHabits(t *testing.T) {
	s, database := newTestScheduler(t)
	user := seedMember(t, database, "reminders@example.com")

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	pending := &model.Habit{HouseholdID: user.HouseholdID, UserID: user.ID, Name: "Stretch", Active: true}
	done := &model.Habit{HouseholdID: user.HouseholdID, UserID: user.ID, Name: "Read", Active: true}
	paused := &model.Habit{HouseholdID: user.HouseholdID, UserID: user.ID, Name: "Run", Active: false}
	require.NoError(t, database.Create(pending).Error)
	require.NoError(t, database.Create(done).Error)
	require.NoError(t, database.Create(paused).Error)
	require.NoError(t, database.Create(&model.HabitCompletion{
		HabitID: done.ID,
		Date:    today,
		Status:  model.CompletionCompleted,
	}).Error)

	s.Run(now)

	notifications := notificationsFor(t, database, user.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationHabitReminder, notifications[0].Type)
	assert.Contains(t, notifications[0].Title, "Stretch")
}

func TestRunNotifiesWholeHouseholdOnLowStock(t *testing.T) {
	s, database := newTestScheduler(t)
	owner := seedMember(t, database, "owner@example.com")
	member := &model.User{
		HouseholdID:  owner.HouseholdID,
		Email:        "member@example.com",
		PasswordHash: "not-a-real-hash",
		Name:         "Second",
		Role:         model.RoleMember,
		FeedToken:    util.NewFeedToken(),
	}
	require.NoError(t, database.Create(member).Error)

	sheet := &model.InventorySheet{HouseholdID: owner.HouseholdID, Name: "Pantry"}
	require.NoError(t, database.Create(sheet).Error)
	require.NoError(t, database.Create(&model.InventoryItem{
		SheetID:      sheet.ID,
		HouseholdID:  owner.HouseholdID,
		Name:         "Flour",
		Quantity:     0.5,
		Unit:         "kg",
		LowThreshold: 2,
	}).Error)
	// No threshold means never low.
	require.NoError(t, database.Create(&model.InventoryItem{
		SheetID:     sheet.ID,
		HouseholdID: owner.HouseholdID,
		Name:        "Salt",
		Quantity:    0,
	}).Error)

	s.Run(time.Now().UTC())

	for _, user := range []*model.User{owner, member} {
		notifications := notificationsFor(t, database, user.ID)
		require.Len(t, notifications, 1)
		assert.Equal(t, model.NotificationLowInventory, notifications[0].Type)
		assert.Contains(t, notifications[0].Title, "Flour")
	}
}

func TestRunIsIdempotentPerDay(t *testing.T) {
	s, database := newTestScheduler(t)
	user := seedMember(t, database, "reminders@example.com")

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	require.NoError(t, database.Create(&model.Task{
		HouseholdID: user.HouseholdID,
		UserID:      user.ID,
		Title:       "Water plants",
		Date:        today,
		TaskType:    model.TaskGeneral,
	}).Error)

	s.Run(now)
	s.Run(now)

	notifications := notificationsFor(t, database, user.ID)
	assert.Len(t, notifications, 1)
}
