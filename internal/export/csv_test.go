package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleEntries() []model.BudgetEntry {
	purchaseID := uint(12)
	return []model.BudgetEntry{
		{
			ID:          1,
			Source:      &model.BudgetSource{Name: "Acme Payroll"},
			Description: "August salary",
			Amount:      decimal.NewFromInt(2500),
			EntryType:   model.EntryIncome,
			Date:        time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Source:      &model.BudgetSource{Name: "Walmart Supercenter"},
			Description: "Great Value Whole Milk",
			Amount:      decimal.NewFromFloat(3.48),
			EntryType:   model.EntryExpense,
			Date:        time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC),
			PurchaseID:  &purchaseID,
		},
	}
}

func TestWriteEntriesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, sampleEntries()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "date", "source", "description", "type", "amount", "purchase_id"}, records[0])
	assert.Equal(t, []string{"1", "2026-08-01", "Acme Payroll", "August salary", "income", "2500.00", ""}, records[1])
	assert.Equal(t, []string{"2", "2026-08-03", "Walmart Supercenter", "Great Value Whole Milk", "expense", "3.48", "12"}, records[2])
}

func TestWriteEntriesCSVEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestWriteEntriesXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntriesXLSX(&buf, sampleEntries()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(entriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Amount", rows[0][5])
	assert.Equal(t, "3.48", rows[2][5])
	assert.Equal(t, "Walmart Supercenter", rows[2][2])
}
