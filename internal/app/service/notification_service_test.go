package service

import (
	"testing"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(database *gorm.DB) NotificationService {
	return NewNotificationService(repository.NewNotificationRepository(database))
}

func TestNotifyValidatesLink(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "inbox@example.com")
	svc := newNotificationService(database)

	linkID := uint(42)
	linkType := model.LinkTask

	// Half a link is rejected either way round.
	_, err := svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationTaskDue, Title: "Due", LinkID: &linkID,
	})
	assert.ErrorIs(t, err, ErrInvalidLink)
	_, err = svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationTaskDue, Title: "Due", LinkType: &linkType,
	})
	assert.ErrorIs(t, err, ErrInvalidLink)

	badLink := model.NotificationLinkType("spaceship")
	_, err = svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationTaskDue, Title: "Due", LinkType: &badLink, LinkID: &linkID,
	})
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, err = svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: "carrier_pigeon", Title: "Due",
	})
	assert.ErrorIs(t, err, ErrInvalidNotifType)

	notification, err := svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationTaskDue, Title: "Due", LinkType: &linkType, LinkID: &linkID,
	})
	require.NoError(t, err)
	require.NotNil(t, notification.LinkType)
	assert.Equal(t, model.LinkTask, *notification.LinkType)
}

func TestNotifySuppressedByPreferences(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "inbox@example.com")
	svc := newNotificationService(database)

	// Only habit reminders enabled.
	_, err := svc.UpdatePreferences(user.ID, []string{string(model.NotificationHabitReminder)})
	require.NoError(t, err)

	suppressed, err := svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationTaskDue, Title: "Due",
	})
	require.NoError(t, err)
	assert.Nil(t, suppressed)

	delivered, err := svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationHabitReminder, Title: "Stretch",
	})
	require.NoError(t, err)
	assert.NotNil(t, delivered)

	count, err := svc.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpdatePreferencesRejectsUnknownType(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "inbox@example.com")
	svc := newNotificationService(database)

	_, err := svc.UpdatePreferences(user.ID, []string{"smoke_signal"})
	assert.ErrorIs(t, err, ErrInvalidNotifType)
}

func TestMarkReadAndDelete(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "inbox@example.com")
	svc := newNotificationService(database)

	first, err := svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationSystem, Title: "Welcome",
	})
	require.NoError(t, err)
	_, err = svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationSystem, Title: "Second",
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(user.ID, first.ID))
	count, err := svc.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	err = svc.MarkRead(user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, svc.MarkAllRead(user.ID))
	count, err = svc.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.Delete(user.ID, first.ID))
	err = svc.Delete(user.ID, first.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestListIsPerUser(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "inbox@example.com")
	other := seedUser(t, database, "other@example.com")
	svc := newNotificationService(database)

	_, err := svc.Notify(user.HouseholdID, user.ID, NotifyInput{
		Type: model.NotificationSystem, Title: "Mine",
	})
	require.NoError(t, err)

	theirs, err := svc.List(other.ID, false, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
