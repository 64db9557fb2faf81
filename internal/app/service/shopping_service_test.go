package service

import (
	"testing"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newShoppingService(database *gorm.DB) ShoppingService {
	return NewShoppingService(
		repository.NewShoppingRepository(database),
		repository.NewInventoryRepository(database),
	)
}

func seedInventoryItem(t *testing.T, database *gorm.DB, user *model.User, name string, quantity, threshold float64) *model.InventoryItem {
	t.Helper()
	sheet := &model.InventorySheet{HouseholdID: user.HouseholdID, UserID: user.ID, Name: "Pantry"}
	require.NoError(t, database.FirstOrCreate(sheet, model.InventorySheet{
		HouseholdID: user.HouseholdID, Name: "Pantry",
	}).Error)

	item := &model.InventoryItem{
		SheetID:      sheet.ID,
		HouseholdID:  user.HouseholdID,
		Name:         name,
		Quantity:     quantity,
		LowThreshold: threshold,
	}
	require.NoError(t, database.Create(item).Error)
	return item
}

func TestAddItemRequiresNameOrReference(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "lists@example.com")
	svc := newShoppingService(database)

	list, err := svc.CreateList(user.HouseholdID, user.ID, "Weekly run")
	require.NoError(t, err)

	_, err = svc.AddItem(user.HouseholdID, list.ID, ListItemInput{})
	assert.ErrorIs(t, err, ErrListItemUnnamed)

	_, err = svc.AddItem(user.HouseholdID, list.ID, ListItemInput{Name: "Eggs"})
	assert.NoError(t, err)

	item := seedInventoryItem(t, database, user, "Flour", 0, 1)
	_, err = svc.AddItem(user.HouseholdID, list.ID, ListItemInput{InventoryItemID: &item.ID})
	assert.NoError(t, err)

	missing := uint(9999)
	_, err = svc.AddItem(user.HouseholdID, list.ID, ListItemInput{InventoryItemID: &missing})
	assert.ErrorIs(t, err, ErrInventoryItemNotFound)
}

func TestGenerateFromLowStock(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "lists@example.com")
	svc := newShoppingService(database)

	// Below, at, and above threshold; only the first two qualify.
	low := seedInventoryItem(t, database, user, "Flour", 1, 3)
	atLimit := seedInventoryItem(t, database, user, "Rice", 2, 2)
	seedInventoryItem(t, database, user, "Salt", 5, 1)
	// Threshold 0 means not tracked.
	seedInventoryItem(t, database, user, "Napkins", 0, 0)

	list, err := svc.CreateList(user.HouseholdID, user.ID, "Restock")
	require.NoError(t, err)

	generated, err := svc.Generate(user.HouseholdID, list.ID)
	require.NoError(t, err)
	require.Len(t, generated.Items, 2)

	quantities := map[string]float64{}
	for _, item := range generated.Items {
		require.NotNil(t, item.InventoryItemID)
		quantities[item.Name] = item.Quantity
	}
	// needed = threshold - quantity, floored at 1.
	assert.Equal(t, float64(2), quantities[low.Name])
	assert.Equal(t, float64(1), quantities[atLimit.Name])

	// A second pass adds nothing; the items are already referenced.
	again, err := svc.Generate(user.HouseholdID, list.ID)
	require.NoError(t, err)
	assert.Len(t, again.Items, 2)
}

func TestUpdateAndDeleteItem(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "lists@example.com")
	svc := newShoppingService(database)

	list, err := svc.CreateList(user.HouseholdID, user.ID, "Weekly run")
	require.NoError(t, err)
	item, err := svc.AddItem(user.HouseholdID, list.ID, ListItemInput{Name: "Eggs"})
	require.NoError(t, err)

	checked := true
	updated, err := svc.UpdateItem(user.HouseholdID, list.ID, item.ID, ListItemInput{Checked: &checked})
	require.NoError(t, err)
	assert.True(t, updated.Checked)

	require.NoError(t, svc.DeleteItem(user.HouseholdID, list.ID, item.ID))
	err = svc.DeleteItem(user.HouseholdID, list.ID, item.ID)
	assert.ErrorIs(t, err, ErrListItemNotFound)
}
