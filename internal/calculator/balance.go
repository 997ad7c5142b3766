package calculator

import (
	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// ComputeBalanceSheet aggregates the given expenses into a balance sheet for
// one user. The input is every expense involving the user as payer or
// participant, with payer and participant names already resolved.
//
// For each expense, the user's own AmountOwed (if they participate) is added
// to TotalOwed, and the full TotalAmount (if they are the payer) is added to
// TotalPaid. A self-paid expense where the payer also participates
// contributes to both sums independently: "I owe my share" and "I fronted
// the total" are tracked separately and net out in Balance.
//
// An empty input returns ErrNoExpenses rather than a zero-valued sheet.
func ComputeBalanceSheet(userID string, expenses []models.Expense) (*models.BalanceSheet, error) {
	if len(expenses) == 0 {
		return nil, ErrNoExpenses
	}

	sheet := &models.BalanceSheet{
		UserID:    userID,
		TotalOwed: decimal.Zero,
		TotalPaid: decimal.Zero,
		Expenses:  make([]models.ExpenseLine, 0, len(expenses)),
	}

	for _, expense := range expenses {
		for _, p := range expense.Participants {
			if p.UserID == userID {
				sheet.TotalOwed = sheet.TotalOwed.Add(p.AmountOwed)
				break
			}
		}
		if expense.CreatedBy.UserID == userID {
			sheet.TotalPaid = sheet.TotalPaid.Add(expense.TotalAmount)
		}

		sheet.Expenses = append(sheet.Expenses, models.ExpenseLine{
			ExpenseID:    expense.ID,
			TotalAmount:  expense.TotalAmount,
			PaidBy:       expense.CreatedBy,
			Participants: expense.Participants,
		})
	}

	sheet.Balance = sheet.TotalOwed.Sub(sheet.TotalPaid)
	return sheet, nil
}
