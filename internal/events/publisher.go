// Package events defines the events emitted when expenses are recorded and
// the publisher abstraction used to emit them.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// ExpenseCreated is emitted after an expense is persisted.
type ExpenseCreated struct {
	ExpenseID        string          `json:"expense_id"`
	CreatedBy        string          `json:"created_by"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	SplitMethod      string          `json:"split_method"`
	ParticipantCount int             `json:"participant_count"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

// NewExpenseCreated builds the event for a stored expense.
func NewExpenseCreated(expense *models.Expense) ExpenseCreated {
	return ExpenseCreated{
		ExpenseID:        expense.ID,
		CreatedBy:        expense.CreatedBy.UserID,
		TotalAmount:      expense.TotalAmount,
		SplitMethod:      string(expense.SplitMethod),
		ParticipantCount: len(expense.Participants),
		OccurredAt:       time.Now().UTC(),
	}
}

// Publisher emits events to an external broker. Publishing is best-effort:
// callers log failures but never fail the originating request on them.
type Publisher interface {
	Publish(ctx context.Context, event any) error
	Close() error
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event any) error { return nil }
func (NoopPublisher) Close() error                                 { return nil }
