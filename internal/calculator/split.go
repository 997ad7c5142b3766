// Package calculator implements the two pure operations at the core of
// splitledger: computing participant shares for a new expense and
// aggregating a user's balance sheet across existing expenses.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// Share is one participant's raw input to a split computation.
// Amount is only meaningful for exact splits, Percentage only for
// percentage splits; a nil pointer means the field was not supplied.
type Share struct {
	UserID     string
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeSplit computes each participant's owed amount for the given total
// and split method. The returned list is parallel to the input order and its
// owed amounts sum to the total, by construction for equal and percentage
// splits and by the validated precondition for exact splits.
//
// ComputeSplit is a pure function: it does not touch storage and assumes the
// share user IDs have already passed the existence check.
func ComputeSplit(total decimal.Decimal, method models.SplitMethod, shares []Share) ([]models.Participant, error) {
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: total amount is %s", ErrNegativeAmount, total)
	}
	if len(shares) == 0 {
		return nil, ErrEmptyParticipants
	}

	switch method {
	case models.SplitEqual:
		return splitEqual(total, shares), nil
	case models.SplitPercentage:
		return splitPercentage(total, shares)
	case models.SplitExact:
		return splitExact(total, shares)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSplitMethod, method)
	}
}

// splitEqual assigns every participant the literal quotient total/n.
// There is no remainder redistribution: if the division is inexact the same
// truncated quotient is used for everyone, so the sum may drift from the
// total by less than one minimal decimal unit.
func splitEqual(total decimal.Decimal, shares []Share) []models.Participant {
	equalShare := total.Div(decimal.NewFromInt(int64(len(shares))))

	participants := make([]models.Participant, len(shares))
	for i, share := range shares {
		participants[i] = models.Participant{
			UserID:     share.UserID,
			AmountOwed: equalShare,
		}
	}
	return participants
}

// splitPercentage validates that the supplied percentages are each in [0,100]
// and sum to exactly 100, then assigns total*pct/100 per participant.
// The percentage is retained on the output row.
func splitPercentage(total decimal.Decimal, shares []Share) ([]models.Participant, error) {
	sum := decimal.Zero
	for _, share := range shares {
		if share.Percentage == nil {
			return nil, fmt.Errorf("%w: participant %s", ErrMissingPercentage, share.UserID)
		}
		pct := *share.Percentage
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: participant %s has percentage %s", ErrNegativeAmount, share.UserID, pct)
		}
		sum = sum.Add(pct)
	}
	if !sum.Equal(hundred) {
		return nil, fmt.Errorf("%w: got %s", ErrPercentageMismatch, sum)
	}

	participants := make([]models.Participant, len(shares))
	for i, share := range shares {
		pct := *share.Percentage
		participants[i] = models.Participant{
			UserID:         share.UserID,
			AmountOwed:     total.Mul(pct).Div(hundred),
			PercentageOwed: decimal.NewNullDecimal(pct),
		}
	}
	return participants, nil
}

// splitExact validates that the supplied amounts sum to exactly the total,
// then passes them through unchanged.
func splitExact(total decimal.Decimal, shares []Share) ([]models.Participant, error) {
	sum := decimal.Zero
	for _, share := range shares {
		if share.Amount == nil {
			return nil, fmt.Errorf("%w: participant %s", ErrMissingAmount, share.UserID)
		}
		if share.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: participant %s has amount %s", ErrNegativeAmount, share.UserID, share.Amount)
		}
		sum = sum.Add(*share.Amount)
	}
	if !sum.Equal(total) {
		return nil, fmt.Errorf("%w: amounts sum to %s, total is %s", ErrAmountMismatch, sum, total)
	}

	participants := make([]models.Participant, len(shares))
	for i, share := range shares {
		participants[i] = models.Participant{
			UserID:     share.UserID,
			AmountOwed: *share.Amount,
		}
	}
	return participants, nil
}
