package models

import "github.com/shopspring/decimal"

// SplitMethod is the policy used to divide an expense among its participants.
// It is a closed set; anything else is rejected before the calculator runs.
type SplitMethod string

const (
	// SplitEqual divides the total evenly among all participants.
	SplitEqual SplitMethod = "equal"

	// SplitExact uses amounts supplied per participant; they must sum to the total.
	SplitExact SplitMethod = "exact"

	// SplitPercentage uses percentages supplied per participant; they must sum to 100.
	SplitPercentage SplitMethod = "percentage"
)

// ParseSplitMethod converts a raw string into a SplitMethod.
// The second return value reports whether the input named a known method.
func ParseSplitMethod(s string) (SplitMethod, bool) {
	m := SplitMethod(s)
	return m, m.Valid()
}

// Valid reports whether m is one of the enumerated split methods.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	}
	return false
}

// UserRef is a resolved reference to a user: the storage ID plus display name.
type UserRef struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// Participant is one user's share of an expense.
type Participant struct {
	// UserID references the participating user.
	UserID string `json:"userId"`

	// Name is the participant's display name, resolved on read.
	Name string `json:"name,omitempty"`

	// AmountOwed is this participant's computed share of the total.
	AmountOwed decimal.Decimal `json:"amountOwed"`

	// PercentageOwed is only meaningful for percentage splits; it is null
	// for the other methods.
	PercentageOwed decimal.NullDecimal `json:"percentageOwed,omitempty"`
}

// Expense represents a recorded expense split among participants.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// TotalAmount is the full amount fronted by the creator. Non-negative.
	TotalAmount decimal.Decimal `json:"totalAmount"`

	// SplitMethod is the policy the participant shares were computed with.
	SplitMethod SplitMethod `json:"splitMethod"`

	// CreatedBy is the user who paid and recorded the expense.
	CreatedBy UserRef `json:"createdBy"`

	// Participants is the ordered list of shares. The sum of AmountOwed
	// across participants equals TotalAmount.
	Participants []Participant `json:"participants"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}
