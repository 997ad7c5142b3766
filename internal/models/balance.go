package models

import "github.com/shopspring/decimal"

// ExpenseLine is one expense as it appears on a user's balance sheet.
// It carries the full resolved participant list, not just the user's own row,
// so clients can itemize without extra lookups.
type ExpenseLine struct {
	ExpenseID    string          `json:"expenseId"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaidBy       UserRef         `json:"paidBy"`
	Participants []Participant   `json:"participants"`
}

// BalanceSheet is the per-user aggregate across every expense involving them.
//
// Balance is TotalOwed minus TotalPaid: positive means the user owes others
// net, negative means they are owed.
type BalanceSheet struct {
	UserID    string          `json:"userId"`
	TotalOwed decimal.Decimal `json:"totalOwed"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	Balance   decimal.Decimal `json:"balance"`
	Expenses  []ExpenseLine   `json:"expenses"`
}
