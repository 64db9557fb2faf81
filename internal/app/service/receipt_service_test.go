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

func newReceiptService(database *gorm.DB) ReceiptService {
	return NewReceiptService(
		database,
		repository.NewTripRepository(database),
		repository.NewStoreRepository(database),
		repository.NewTaskRepository(database),
	)
}

func walmartStop() StopInput {
	return StopInput{
		StoreName: "Walmart Supercenter",
		Street:    "406 S Walton Blvd",
		City:      "Bentonville",
		State:     "AR",
	}
}

func TestTripTaskTitle(t *testing.T) {
	assert.Equal(t, "Shopping trip", TripTaskTitle(nil))
	assert.Equal(t, "Shopping trip: Walmart Supercenter", TripTaskTitle([]string{"Walmart Supercenter"}))
	assert.Equal(t, "Shopping trip: Aldi, Costco", TripTaskTitle([]string{"Aldi", "Costco"}))
}

func TestCreateTripCreatesStopsAndTask(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "shopper@example.com")
	svc := newReceiptService(database)

	tripDate := day(2026, time.March, 14)
	trip, err := svc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:   tripDate.Add(15 * time.Hour), // time-of-day must be dropped
		Driver: "Alex",
		Stops:  []StopInput{walmartStop()},
	})
	require.NoError(t, err)
	require.Len(t, trip.Stops, 1)
	assert.True(t, trip.Date.Equal(tripDate))

	var task model.Task
	require.NoError(t, database.Where("trip_id = ?", trip.ID).First(&task).Error)
	assert.Equal(t, model.TaskTrip, task.TaskType)
	assert.Equal(t, "Shopping trip: Walmart Supercenter", task.Title)
	assert.True(t, task.Date.Equal(tripDate))
}

func TestCreateTripRequiresStop(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "shopper@example.com")
	svc := newReceiptService(database)

	_, err := svc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{Date: time.Now()})
	assert.ErrorIs(t, err, ErrStopStoreRequired)
}

// The seed scenario: a trip with one stop and two purchases must leave
// exactly one trip, one stop, two purchases and two back-linked budget
// entries behind, plus the linked calendar task.
func TestCreatePurchaseBackLinksEntry(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "shopper@example.com")
	svc := newReceiptService(database)

	trip, err := svc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)
	stopID := trip.Stops[0].ID

	prices := []decimal.Decimal{
		decimal.NewFromFloat(3.48),
		decimal.NewFromFloat(4.28),
	}
	for i, price := range prices {
		_, err := svc.CreatePurchase(user.HouseholdID, user.ID, stopID, PurchaseInput{
			Name:  "Item",
			Count: i + 1,
			Price: price,
		})
		require.NoError(t, err)
	}

	var tripCount, stopCount, purchaseCount, entryCount int64
	database.Model(&model.Trip{}).Count(&tripCount)
	database.Model(&model.Stop{}).Count(&stopCount)
	database.Model(&model.Purchase{}).Count(&purchaseCount)
	database.Model(&model.BudgetEntry{}).Count(&entryCount)
	assert.EqualValues(t, 1, tripCount)
	assert.EqualValues(t, 1, stopCount)
	assert.EqualValues(t, 2, purchaseCount)
	assert.EqualValues(t, 2, entryCount)

	// Every purchase resolves to an entry whose purchase_id points back.
	var purchases []model.Purchase
	require.NoError(t, database.Find(&purchases).Error)
	for _, purchase := range purchases {
		var entry model.BudgetEntry
		require.NoError(t, database.First(&entry, purchase.BudgetEntryID).Error)
		require.NotNil(t, entry.PurchaseID)
		assert.Equal(t, purchase.ID, *entry.PurchaseID)
		assert.Equal(t, user.HouseholdID, entry.HouseholdID)
		assert.True(t, entry.Date.Equal(trip.Date))
	}

	// The lazy store-kind source was created once, named after the store.
	var sources []model.BudgetSource
	require.NoError(t, database.Find(&sources).Error)
	require.Len(t, sources, 1)
	assert.Equal(t, "Walmart Supercenter", sources[0].Name)
	assert.Equal(t, model.SourceKindStore, sources[0].Kind)
}

func TestCreatePurchaseWithExistingEntry(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "shopper@example.com")
	svc := newReceiptService(database)

	trip, err := svc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)

	source := &model.BudgetSource{HouseholdID: user.HouseholdID, UserID: user.ID, Name: "Groceries"}
	require.NoError(t, database.Create(source).Error)
	entry := &model.BudgetEntry{
		HouseholdID: user.HouseholdID,
		SourceID:    source.ID,
		Amount:      decimal.NewFromFloat(9.99),
		EntryType:   model.EntryExpense,
		Date:        trip.Date,
	}
	require.NoError(t, database.Create(entry).Error)

	purchase, err := svc.CreatePurchase(user.HouseholdID, user.ID, trip.Stops[0].ID, PurchaseInput{
		Name:          "Pre-budgeted item",
		Price:         decimal.NewFromFloat(9.99),
		BudgetEntryID: &entry.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, entry.ID, purchase.BudgetEntryID)

	// The entry is now taken; linking a second purchase to it must fail.
	_, err = svc.CreatePurchase(user.HouseholdID, user.ID, trip.Stops[0].ID, PurchaseInput{
		Name:          "Double-spend",
		Price:         decimal.NewFromFloat(1.00),
		BudgetEntryID: &entry.ID,
	})
	assert.ErrorIs(t, err, ErrEntryAlreadyLinked)
}

func TestUpdatePurchaseSyncsEntryAmount(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "shopper@example.com")
	svc := newReceiptService(database)

	trip, err := svc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)

	purchase, err := svc.CreatePurchase(user.HouseholdID, user.ID, trip.Stops[0].ID, PurchaseInput{
		Name:  "Milk",
		Price: decimal.NewFromFloat(3.48),
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePurchase(user.HouseholdID, purchase.ID, PurchaseInput{
		Name:  "Milk",
		Price: decimal.NewFromFloat(3.98),
	})
	require.NoError(t, err)

	var entry model.BudgetEntry
	require.NoError(t, database.First(&entry, updated.BudgetEntryID).Error)
	assert.True(t, entry.Amount.Equal(decimal.NewFromFloat(3.98)))
}

func TestDeleteTripCascades(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "shopper@example.com")
	svc := newReceiptService(database)

	trip, err := svc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)
	_, err = svc.CreatePurchase(user.HouseholdID, user.ID, trip.Stops[0].ID, PurchaseInput{
		Name:  "Milk",
		Price: decimal.NewFromFloat(3.48),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTrip(user.HouseholdID, trip.ID))

	var stopCount, purchaseCount, entryCount, taskCount, sourceCount int64
	database.Model(&model.Stop{}).Count(&stopCount)
	database.Model(&model.Purchase{}).Count(&purchaseCount)
	database.Model(&model.BudgetEntry{}).Count(&entryCount)
	database.Model(&model.Task{}).Where("trip_id = ?", trip.ID).Count(&taskCount)
	database.Model(&model.BudgetSource{}).Count(&sourceCount)

	assert.Zero(t, stopCount)
	assert.Zero(t, purchaseCount)
	assert.Zero(t, entryCount)
	assert.Zero(t, taskCount)
	// Sources survive the cascade.
	assert.EqualValues(t, 1, sourceCount)
}

func TestDeletePurchaseRemovesEntry(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "shopper@example.com")
	svc := newReceiptService(database)

	trip, err := svc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)
	purchase, err := svc.CreatePurchase(user.HouseholdID, user.ID, trip.Stops[0].ID, PurchaseInput{
		Name:  "Milk",
		Price: decimal.NewFromFloat(3.48),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePurchase(user.HouseholdID, purchase.ID))

	var entryCount int64
	database.Model(&model.BudgetEntry{}).Count(&entryCount)
	assert.Zero(t, entryCount)
}

func TestTripIsScopedToHousehold(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "shopper@example.com")
	other := seedUser(t, database, "stranger@example.com")
	svc := newReceiptService(database)

	trip, err := svc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)

	_, err = svc.GetTrip(other.HouseholdID, trip.ID)
	assert.ErrorIs(t, err, ErrTripNotFound)
	err = svc.DeleteTrip(other.HouseholdID, trip.ID)
	assert.ErrorIs(t, err, ErrTripNotFound)
}
