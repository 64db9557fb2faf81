package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
)

// WriteEntriesCSV streams the budget ledger as CSV. Amounts keep the
// decimal string representation, never a float round-trip.
func WriteEntriesCSV(w io.Writer, entries []model.BudgetEntry) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "date", "source", "description", "type", "amount", "purchase_id"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, entry := range entries {
		sourceName := ""
		if entry.Source != nil {
			sourceName = entry.Source.Name
		}
		purchaseID := ""
		if entry.PurchaseID != nil {
			purchaseID = strconv.FormatUint(uint64(*entry.PurchaseID), 10)
		}

		record := []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			entry.Date.Format("2006-01-02"),
			sourceName,
			entry.Description,
			string(entry.EntryType),
			entry.Amount.StringFixed(2),
			purchaseID,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
