package service

import (
	"testing"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGoalService(database *gorm.DB) GoalService {
	return NewGoalService(
		database,
		repository.NewGoalRepository(database),
		repository.NewTagRepository(database),
	)
}

func TestGoalHistoryOnChanges(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "goals@example.com")
	svc := newGoalService(database)

	goal, err := svc.Create(user.HouseholdID, user.ID, GoalInput{Title: "Learn piano"})
	require.NoError(t, err)
	assert.Equal(t, model.GoalActive, goal.Status)

	history, err := svc.History(user.HouseholdID, goal.ID)
	require.NoError(t, err)
	require.Len(t, history, 1) // the creation event

	// A title-only change writes no history.
	_, err = svc.Update(user.HouseholdID, goal.ID, GoalInput{Title: "Learn jazz piano"})
	require.NoError(t, err)
	history, err = svc.History(user.HouseholdID, goal.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	progress := 40
	_, err = svc.Update(user.HouseholdID, goal.ID, GoalInput{Progress: &progress, Note: "first recital"})
	require.NoError(t, err)
	history, err = svc.History(user.HouseholdID, goal.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestGoalProgressValidation(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "goals@example.com")
	svc := newGoalService(database)

	goal, err := svc.Create(user.HouseholdID, user.ID, GoalInput{Title: "Run a marathon"})
	require.NoError(t, err)

	over := 150
	_, err = svc.Update(user.HouseholdID, goal.ID, GoalInput{Progress: &over})
	assert.ErrorIs(t, err, ErrInvalidProgress)

	bogus := model.GoalStatus("daydreaming")
	_, err = svc.Update(user.HouseholdID, goal.ID, GoalInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidGoalStatus)
}

func TestAchievedGoalPinsProgress(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "goals@example.com")
	svc := newGoalService(database)

	goal, err := svc.Create(user.HouseholdID, user.ID, GoalInput{Title: "Read 12 books"})
	require.NoError(t, err)

	achieved := model.GoalAchieved
	updated, err := svc.Update(user.HouseholdID, goal.ID, GoalInput{Status: &achieved})
	require.NoError(t, err)
	assert.Equal(t, model.GoalAchieved, updated.Status)
	assert.Equal(t, 100, updated.Progress)
}

func TestDeleteCategoryDetachesGoals(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "goals@example.com")
	svc := newGoalService(database)

	category, err := svc.CreateCategory(user.HouseholdID, "Health")
	require.NoError(t, err)
	goal, err := svc.Create(user.HouseholdID, user.ID, GoalInput{
		Title:      "Sleep more",
		CategoryID: &category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(user.HouseholdID, category.ID))

	reloaded, err := svc.Get(user.HouseholdID, goal.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)
}

func TestMilestones(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "goals@example.com")
	svc := newGoalService(database)

	goal, err := svc.Create(user.HouseholdID, user.ID, GoalInput{Title: "Renovate kitchen"})
	require.NoError(t, err)

	milestone, err := svc.AddMilestone(user.HouseholdID, goal.ID, "Pick countertops")
	require.NoError(t, err)

	done := true
	updated, err := svc.UpdateMilestone(user.HouseholdID, goal.ID, milestone.ID, nil, &done)
	require.NoError(t, err)
	assert.True(t, updated.Done)

	require.NoError(t, svc.DeleteMilestone(user.HouseholdID, goal.ID, milestone.ID))
	_, err = svc.UpdateMilestone(user.HouseholdID, goal.ID, milestone.ID, nil, &done)
	assert.ErrorIs(t, err, ErrMilestoneNotFound)
}

func TestDeleteGoalRemovesMilestonesAndHistory(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "goals@example.com")
	svc := newGoalService(database)

	goal, err := svc.Create(user.HouseholdID, user.ID, GoalInput{Title: "Declutter"})
	require.NoError(t, err)
	_, err = svc.AddMilestone(user.HouseholdID, goal.ID, "Garage")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.HouseholdID, goal.ID))

	var milestones, history int64
	database.Model(&model.Milestone{}).Count(&milestones)
	database.Model(&model.GoalHistory{}).Count(&history)
	assert.Zero(t, milestones)
	assert.Zero(t, history)
}
