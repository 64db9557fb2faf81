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

func newBudgetService(database *gorm.DB) BudgetService {
	return NewBudgetService(
		database,
		repository.NewBudgetRepository(database),
		repository.NewTagRepository(database),
	)
}

func TestCreateEntryDefaultsToExpense(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "ledger@example.com")
	svc := newBudgetService(database)

	source, err := svc.CreateSource(user.HouseholdID, user.ID, "Groceries", "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceKindManual, source.Kind)

	entry, err := svc.CreateEntry(user.HouseholdID, EntryInput{
		SourceID: source.ID,
		Amount:   decimal.NewFromFloat(12.50),
		Date:     day(2026, time.February, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.EntryExpense, entry.EntryType)
}

func TestSummaryDecimalArithmetic(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "ledger@example.com")
	svc := newBudgetService(database)

	groceries, err := svc.CreateSource(user.HouseholdID, user.ID, "Groceries", model.SourceKindManual)
	require.NoError(t, err)
	salary, err := svc.CreateSource(user.HouseholdID, user.ID, "Salary", model.SourceKindManual)
	require.NoError(t, err)

	// 0.1 + 0.2 style amounts; float math would drift here.
	amounts := []string{"0.10", "0.20", "3.48", "4.28"}
	for _, raw := range amounts {
		amount, _ := decimal.NewFromString(raw)
		_, err := svc.CreateEntry(user.HouseholdID, EntryInput{
			SourceID:  groceries.ID,
			Amount:    amount,
			EntryType: model.EntryExpense,
			Date:      day(2026, time.February, 10),
		})
		require.NoError(t, err)
	}
	income, _ := decimal.NewFromString("2500.00")
	_, err = svc.CreateEntry(user.HouseholdID, EntryInput{
		SourceID:  salary.ID,
		Amount:    income,
		EntryType: model.EntryIncome,
		Date:      day(2026, time.February, 1),
	})
	require.NoError(t, err)

	summary, err := svc.Summary(user.HouseholdID, nil, nil)
	require.NoError(t, err)

	wantExpenses, _ := decimal.NewFromString("8.06")
	wantNet, _ := decimal.NewFromString("2491.94")
	assert.True(t, summary.TotalExpenses.Equal(wantExpenses), "got %s", summary.TotalExpenses)
	assert.True(t, summary.TotalIncome.Equal(income))
	assert.True(t, summary.Net.Equal(wantNet), "got %s", summary.Net)
	require.Len(t, summary.Sources, 2)
}

func TestSummaryWindowFilters(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "ledger@example.com")
	svc := newBudgetService(database)

	source, err := svc.CreateSource(user.HouseholdID, user.ID, "Groceries", model.SourceKindManual)
	require.NoError(t, err)

	for _, d := range []time.Time{day(2026, time.January, 5), day(2026, time.February, 5)} {
		_, err := svc.CreateEntry(user.HouseholdID, EntryInput{
			SourceID: source.ID,
			Amount:   decimal.NewFromInt(10),
			Date:     d,
		})
		require.NoError(t, err)
	}

	from := day(2026, time.February, 1)
	to := day(2026, time.February, 28)
	summary, err := svc.Summary(user.HouseholdID, &from, &to)
	require.NoError(t, err)
	assert.True(t, summary.TotalExpenses.Equal(decimal.NewFromInt(10)))
}

func TestDeleteEntryBlockedByPurchase(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "ledger@example.com")
	budgetSvc := newBudgetService(database)
	receiptSvc := newReceiptService(database)

	trip, err := receiptSvc.CreateTrip(user.HouseholdID, user.ID, CreateTripInput{
		Date:  day(2026, time.March, 14),
		Stops: []StopInput{walmartStop()},
	})
	require.NoError(t, err)
	purchase, err := receiptSvc.CreatePurchase(user.HouseholdID, user.ID, trip.Stops[0].ID, PurchaseInput{
		Name:  "Milk",
		Price: decimal.NewFromFloat(3.48),
	})
	require.NoError(t, err)

	err = budgetSvc.DeleteEntry(user.HouseholdID, purchase.BudgetEntryID)
	assert.ErrorIs(t, err, ErrEntryHasPurchase)

	// Deleting the purchase first clears the way.
	require.NoError(t, receiptSvc.DeletePurchase(user.HouseholdID, purchase.ID))
	_, err = budgetSvc.GetEntry(user.HouseholdID, purchase.BudgetEntryID)
	assert.ErrorIs(t, err, ErrBudgetEntryNotFound)
}

func TestEntryScopedToHousehold(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "ledger@example.com")
	other := seedUser(t, database, "stranger@example.com")
	svc := newBudgetService(database)

	source, err := svc.CreateSource(user.HouseholdID, user.ID, "Groceries", model.SourceKindManual)
	require.NoError(t, err)
	entry, err := svc.CreateEntry(user.HouseholdID, EntryInput{
		SourceID: source.ID,
		Amount:   decimal.NewFromInt(5),
		Date:     day(2026, time.March, 1),
	})
	require.NoError(t, err)

	_, err = svc.GetEntry(other.HouseholdID, entry.ID)
	assert.ErrorIs(t, err, ErrBudgetEntryNotFound)
}

func TestSetSourceTags(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "budget@example.com")
	neighbor := seedUser(t, database, "neighbor@example.com")
	budgetSvc := newBudgetService(database)
	tagSvc := newTagService(database)

	source, err := budgetSvc.CreateSource(user.HouseholdID, user.ID, "Groceries", "")
	require.NoError(t, err)
	food, err := tagSvc.Create(user.HouseholdID, "food", "")
	require.NoError(t, err)
	theirs, err := tagSvc.Create(neighbor.HouseholdID, "theirs", "")
	require.NoError(t, err)

	tagged, err := budgetSvc.SetSourceTags(user.HouseholdID, source.ID, []uint{food.ID})
	require.NoError(t, err)
	require.Len(t, tagged.Tags, 1)
	assert.Equal(t, "food", tagged.Tags[0].Name)

	// Cross-household tags are rejected.
	_, err = budgetSvc.SetSourceTags(user.HouseholdID, source.ID, []uint{theirs.ID})
	assert.ErrorIs(t, err, ErrTagNotFound)

	// An empty set clears the tags.
	cleared, err := budgetSvc.SetSourceTags(user.HouseholdID, source.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, cleared.Tags)
}
