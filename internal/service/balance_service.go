package service

import (
	"context"

	"splitledger/internal/calculator"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// BalanceService derives per-user balance sheets from stored expenses.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// BalanceSheet aggregates every expense involving the user, as payer or
// participant, into their balance sheet. Self-paid expenses appear once even
// though both queries return them.
func (s *BalanceService) BalanceSheet(ctx context.Context, userID string) (*models.BalanceSheet, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	created, err := s.store.GetExpensesByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	participating, err := s.store.GetExpensesByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(created))
	expenses := make([]models.Expense, 0, len(created)+len(participating))
	for _, e := range created {
		seen[e.ID] = true
		expenses = append(expenses, e)
	}
	for _, e := range participating {
		if !seen[e.ID] {
			expenses = append(expenses, e)
		}
	}

	return calculator.ComputeBalanceSheet(userID, expenses)
}
