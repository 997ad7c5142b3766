// Package export renders balance sheets as flat CSV for download.
// It is a pure presentation transform: no amounts are recomputed here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"splitledger/internal/models"
)

// BalanceSheetRows flattens a balance sheet into CSV records: a summary
// section followed by one row per participant per expense.
func BalanceSheetRows(sheet *models.BalanceSheet) [][]string {
	rows := [][]string{
		{"user_id", "total_owed", "total_paid", "balance"},
		{sheet.UserID, sheet.TotalOwed.String(), sheet.TotalPaid.String(), sheet.Balance.String()},
		{"expense_id", "total_amount", "paid_by_id", "paid_by_name", "participant_id", "participant_name", "amount_owed"},
	}

	for _, line := range sheet.Expenses {
		for _, p := range line.Participants {
			rows = append(rows, []string{
				line.ExpenseID,
				line.TotalAmount.String(),
				line.PaidBy.UserID,
				line.PaidBy.Name,
				p.UserID,
				p.Name,
				p.AmountOwed.String(),
			})
		}
	}

	return rows
}

// WriteCSV writes the flattened balance sheet to w.
func WriteCSV(w io.Writer, sheet *models.BalanceSheet) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(BalanceSheetRows(sheet)); err != nil {
		return fmt.Errorf("failed to write balance sheet csv: %w", err)
	}
	return nil
}
