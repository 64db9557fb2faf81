package service

import (
	"testing"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(database *gorm.DB) TaskService {
	return NewTaskService(
		database,
		repository.NewTaskRepository(database),
		repository.NewTagRepository(database),
	)
}

func TestDeleteTripTaskCascadesTrip(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "calendar@example.com")
	receiptSvc := newReceiptService(database)
	taskSvc := newTaskService(database)

	trip, err := receiptSvc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)
	_, err = receiptSvc.CreatePurchase(user.HouseholdID, user.ID, trip.Stops[0].ID, PurchaseInput{
		Name:  "Milk",
		Price: decimal.NewFromFloat(3.48),
	})
	require.NoError(t, err)

	var task model.Task
	require.NoError(t, database.Where("trip_id = ?", trip.ID).First(&task).Error)

	require.NoError(t, taskSvc.Delete(user.HouseholdID, task.ID))

	var trips, stops, purchases, entries int64
	database.Model(&model.Trip{}).Count(&trips)
	database.Model(&model.Stop{}).Count(&stops)
	database.Model(&model.Purchase{}).Count(&purchases)
	database.Model(&model.BudgetEntry{}).Count(&entries)
	assert.Zero(t, trips)
	assert.Zero(t, stops)
	assert.Zero(t, purchases)
	assert.Zero(t, entries)
}

func TestUpdateTripTaskDateSyncsTrip(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "calendar@example.com")
	receiptSvc := newReceiptService(database)
	taskSvc := newTaskService(database)

	trip, err := receiptSvc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)

	var task model.Task
	require.NoError(t, database.Where("trip_id = ?", trip.ID).First(&task).Error)

	newDate := day(2026, time.March, 21)
	_, err = taskSvc.Update(user.HouseholdID, task.ID, TaskInput{Date: &newDate})
	require.NoError(t, err)

	var reloaded model.Trip
	require.NoError(t, database.First(&reloaded, trip.ID).Error)
	assert.True(t, reloaded.Date.Equal(newDate))
}

func TestReorderStepsPersistsPositions(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "calendar@example.com")
	svc := newTaskService(database)

	task, err := svc.Create(user.HouseholdID, user.ID, "Pack for trip", "", day(2026, time.May, 1), "")
	require.NoError(t, err)

	var ids []uint
	for _, label := range []string{"Clothes", "Toiletries", "Chargers"} {
		step, err := svc.AddStep(user.HouseholdID, task.ID, label)
		require.NoError(t, err)
		ids = append(ids, step.ID)
	}

	// Reverse the order.
	reordered, err := svc.ReorderSteps(user.HouseholdID, task.ID, []uint{ids[2], ids[1], ids[0]})
	require.NoError(t, err)
	require.Len(t, reordered.Steps, 3)
	assert.Equal(t, "Chargers", reordered.Steps[0].Label)
	assert.Equal(t, "Clothes", reordered.Steps[2].Label)
}

func TestTaskStepLifecycle(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "calendar@example.com")
	svc := newTaskService(database)

	task, err := svc.Create(user.HouseholdID, user.ID, "Clean garage", "", day(2026, time.May, 1), "09:00")
	require.NoError(t, err)

	step, err := svc.AddStep(user.HouseholdID, task.ID, "Sweep")
	require.NoError(t, err)

	done := true
	updated, err := svc.UpdateStep(user.HouseholdID, task.ID, step.ID, nil, &done)
	require.NoError(t, err)
	assert.True(t, updated.Done)

	require.NoError(t, svc.DeleteStep(user.HouseholdID, task.ID, step.ID))
	_, err = svc.UpdateStep(user.HouseholdID, task.ID, step.ID, nil, &done)
	assert.ErrorIs(t, err, ErrTaskStepNotFound)
}

func TestSetTagsValidatesHousehold(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "calendar@example.com")
	neighbor := seedUser(t, database, "neighbor@example.com")
	taskSvc := newTaskService(database)
	tagSvc := newTagService(database)

	task, err := taskSvc.Create(user.HouseholdID, user.ID, "Tagged task", "", day(2026, time.May, 1), "")
	require.NoError(t, err)
	mine, err := tagSvc.Create(user.HouseholdID, "mine", "")
	require.NoError(t, err)
	theirs, err := tagSvc.Create(neighbor.HouseholdID, "theirs", "")
	require.NoError(t, err)

	tagged, err := taskSvc.SetTags(user.HouseholdID, task.ID, []uint{mine.ID})
	require.NoError(t, err)
	require.Len(t, tagged.Tags, 1)

	_, err = taskSvc.SetTags(user.HouseholdID, task.ID, []uint{theirs.ID})
	assert.ErrorIs(t, err, ErrTagNotFound)
}
