package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"splitledger/internal/calculator"
	"splitledger/internal/events"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// ExpenseInput is a raw expense submission before the split is computed.
type ExpenseInput struct {
	CreatedBy   string
	TotalAmount decimal.Decimal
	SplitMethod models.SplitMethod
	Shares      []calculator.Share
}

// ExpenseService records expenses and lists them per creator.
type ExpenseService struct {
	store     storage.Store
	publisher events.Publisher
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store, publisher events.Publisher) *ExpenseService {
	return &ExpenseService{store: store, publisher: publisher}
}

// CreateExpense validates the submission, computes the split, and persists
// the finished expense. The creator and every share must reference existing
// users; a missing share user surfaces as ErrUnknownParticipant.
func (s *ExpenseService) CreateExpense(ctx context.Context, input ExpenseInput) (*models.Expense, error) {
	creator, err := s.store.GetUserByID(ctx, input.CreatedBy)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(input.Shares))
	for i, share := range input.Shares {
		ids[i] = share.UserID
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, exists := users[id]; !exists {
			return nil, fmt.Errorf("%w: %s", calculator.ErrUnknownParticipant, id)
		}
	}

	participants, err := calculator.ComputeSplit(input.TotalAmount, input.SplitMethod, input.Shares)
	if err != nil {
		slog.Warn("Split computation rejected", "created_by", input.CreatedBy, "error", err)
		return nil, err
	}
	for i := range participants {
		participants[i].Name = users[participants[i].UserID].Name
	}

	expense := &models.Expense{
		TotalAmount:  input.TotalAmount,
		SplitMethod:  input.SplitMethod,
		CreatedBy:    models.UserRef{UserID: creator.ID, Name: creator.Name},
		Participants: participants,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "created_by", input.CreatedBy, "error", err)
		return nil, err
	}

	// Best-effort: the expense is already durable, so a publish failure
	// must not fail the request.
	if err := s.publisher.Publish(ctx, events.NewExpenseCreated(expense)); err != nil {
		slog.Warn("Failed to publish expense event", "expense_id", expense.ID, "error", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"created_by", creator.ID,
		"split_method", expense.SplitMethod,
		"total_amount", expense.TotalAmount,
		"participants", len(expense.Participants),
	)
	return expense, nil
}

// ExpensesByCreator lists all expenses recorded by the user.
// An existing user with no recorded expenses surfaces ErrNoExpenses.
func (s *ExpenseService) ExpensesByCreator(ctx context.Context, userID string) ([]models.Expense, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	expenses, err := s.store.GetExpensesByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, calculator.ErrNoExpenses
	}
	return expenses, nil
}
