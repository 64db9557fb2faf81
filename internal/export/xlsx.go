package export

import (
	"fmt"
	"io"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const entriesSheet = "Budget Entries"

// WriteEntriesXLSX renders the ledger as a spreadsheet with a bold
// header row and one row per entry.
func WriteEntriesXLSX(w io.Writer, entries []model.BudgetEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(entriesSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Date", "Source", "Description", "Type", "Amount", "Purchase ID"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(entriesSheet, cell, header); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetRowStyle(entriesSheet, 1, 1, headerStyle)
	}

	for i, entry := range entries {
		row := i + 2
		sourceName := ""
		if entry.Source != nil {
			sourceName = entry.Source.Name
		}

		values := []interface{}{
			entry.ID,
			entry.Date.Format("2006-01-02"),
			sourceName,
			entry.Description,
			string(entry.EntryType),
			entry.Amount.StringFixed(2),
		}
		if entry.PurchaseID != nil {
			values = append(values, *entry.PurchaseID)
		} else {
			values = append(values, "")
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(entriesSheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(entriesSheet, "B", "D", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	return f.Write(w)
}
