package calculator

import "errors"

// Validation failures returned by the calculator. All of them are
// caller-correctable: the request was inconsistent, nothing is retried.
var (
	// ErrEmptyParticipants means the expense had no participants.
	ErrEmptyParticipants = errors.New("participant list must not be empty")

	// ErrInvalidSplitMethod means the split method is not one of equal,
	// exact, or percentage.
	ErrInvalidSplitMethod = errors.New("invalid split method")

	// ErrNegativeAmount means the total or a supplied share was negative.
	ErrNegativeAmount = errors.New("amount must be non-negative")

	// ErrPercentageMismatch means the supplied percentages do not sum to 100.
	ErrPercentageMismatch = errors.New("percentages must add up to 100")

	// ErrAmountMismatch means the supplied exact amounts do not sum to the total.
	ErrAmountMismatch = errors.New("amounts must add up to total expense")

	// ErrMissingPercentage means a percentage split share lacks percentageOwed.
	ErrMissingPercentage = errors.New("percentage split requires percentageOwed for every participant")

	// ErrMissingAmount means an exact split share lacks a raw amount.
	ErrMissingAmount = errors.New("exact split requires amount for every participant")

	// ErrUnknownParticipant means a share references a user that does not
	// exist. The existence check runs in the service layer; the calculator
	// itself assumes referential validity.
	ErrUnknownParticipant = errors.New("participant does not exist")

	// ErrNoExpenses means no expense references the user as payer or
	// participant. Deliberately distinct from an all-zero balance sheet:
	// "never transacted" is not the same as "balanced".
	ErrNoExpenses = errors.New("no expenses found for this user")
)
