package service

import (
	"testing"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHabitService(database *gorm.DB) HabitService {
	return NewHabitService(repository.NewHabitRepository(database))
}

func TestCompleteHabitOncePerDay(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "habits@example.com")
	svc := newHabitService(database)

	habit, err := svc.Create(user.HouseholdID, user.ID, "Stretch", "daily")
	require.NoError(t, err)

	today := day(2026, time.April, 2)
	completion, err := svc.Complete(user.HouseholdID, habit.ID, today, "", "")
	require.NoError(t, err)
	assert.Equal(t, model.CompletionCompleted, completion.Status)

	// Same day again, even with a different wall-clock time.
	_, err = svc.Complete(user.HouseholdID, habit.ID, today.Add(10*time.Hour), "", "")
	assert.ErrorIs(t, err, ErrHabitAlreadyCompleted)

	// The next day is fine.
	_, err = svc.Complete(user.HouseholdID, habit.ID, today.AddDate(0, 0, 1), "", "")
	assert.NoError(t, err)
}

func TestSkippedCompletionNeedsReason(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "habits@example.com")
	svc := newHabitService(database)

	habit, err := svc.Create(user.HouseholdID, user.ID, "Run", "daily")
	require.NoError(t, err)

	today := day(2026, time.April, 2)
	_, err = svc.Complete(user.HouseholdID, habit.ID, today, model.CompletionSkipped, "")
	assert.ErrorIs(t, err, ErrSkipReasonRequired)

	completion, err := svc.Complete(user.HouseholdID, habit.ID, today, model.CompletionSkipped, "rain")
	require.NoError(t, err)
	assert.Equal(t, "rain", completion.Reason)

	_, err = svc.Complete(user.HouseholdID, habit.ID, today, "napped", "")
	assert.ErrorIs(t, err, ErrInvalidCompletionState)
}

func TestUncomplete(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "habits@example.com")
	svc := newHabitService(database)

	habit, err := svc.Create(user.HouseholdID, user.ID, "Read", "daily")
	require.NoError(t, err)

	today := day(2026, time.April, 2)
	err = svc.Uncomplete(user.HouseholdID, habit.ID, today)
	assert.ErrorIs(t, err, ErrCompletionNotFound)

	_, err = svc.Complete(user.HouseholdID, habit.ID, today, "", "")
	require.NoError(t, err)
	require.NoError(t, svc.Uncomplete(user.HouseholdID, habit.ID, today))

	// Removed, so the day can be completed again.
	_, err = svc.Complete(user.HouseholdID, habit.ID, today, "", "")
	assert.NoError(t, err)
}

func TestHabitStats(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "habits@example.com")
	svc := newHabitService(database)

	habit, err := svc.Create(user.HouseholdID, user.ID, "Meditate", "daily")
	require.NoError(t, err)

	today := day(2026, time.April, 10)
	// Done 3-day run ending today, a gap, then a lone earlier day and a skip.
	for _, offset := range []int{0, 1, 2, 5} {
		_, err := svc.Complete(user.HouseholdID, habit.ID, today.AddDate(0, 0, -offset), "", "")
		require.NoError(t, err)
	}
	_, err = svc.Complete(user.HouseholdID, habit.ID, today.AddDate(0, 0, -4), model.CompletionSkipped, "sick")
	require.NoError(t, err)

	stats, err := svc.Stats(user.HouseholdID, habit.ID, today)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
	assert.Equal(t, 4, stats.TotalDone)
	assert.Equal(t, 1, stats.TotalSkipped)
}

func TestDeleteHabitRemovesCompletions(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "habits@example.com")
	svc := newHabitService(database)

	habit, err := svc.Create(user.HouseholdID, user.ID, "Water plants", "weekly")
	require.NoError(t, err)
	_, err = svc.Complete(user.HouseholdID, habit.ID, day(2026, time.April, 2), "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.HouseholdID, habit.ID))

	var completions int64
	database.Model(&model.HabitCompletion{}).Count(&completions)
	assert.Zero(t, completions)
}
