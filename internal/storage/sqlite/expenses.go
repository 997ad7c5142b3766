package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

// CreateExpense persists a new expense and its participant rows.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, total_amount, split_method, created_by, created_at) VALUES (?, ?, ?, ?, ?)",
		expense.ID, expense.TotalAmount, string(expense.SplitMethod), expense.CreatedBy.UserID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	// Position preserves the submitted participant order.
	for i, p := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, user_id, amount_owed, percentage_owed) VALUES (?, ?, ?, ?, ?)",
			expense.ID, i, p.UserID, p.AmountOwed, p.PercentageOwed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpensesByCreator retrieves all expenses created by the user,
// with the payer and participant names resolved.
func (s *SQLiteStore) GetExpensesByCreator(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.getExpenses(ctx, "e.created_by = ?", userID)
}

// GetExpensesByParticipant retrieves all expenses in which the user appears
// as a participant, with the payer and participant names resolved.
func (s *SQLiteStore) GetExpensesByParticipant(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.getExpenses(ctx,
		"e.id IN (SELECT expense_id FROM expense_participants WHERE user_id = ?)", userID)
}

func (s *SQLiteStore) getExpenses(ctx context.Context, where, arg string) ([]models.Expense, error) {
	query := `
		SELECT e.id, e.total_amount, e.split_method, e.created_by, u.name, e.created_at
		FROM expenses e
		JOIN users u ON u.id = e.created_by
		WHERE ` + where + `
		ORDER BY e.created_at, e.id
	`

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		var method string
		if err := rows.Scan(
			&expense.ID,
			&expense.TotalAmount,
			&method,
			&expense.CreatedBy.UserID,
			&expense.CreatedBy.Name,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.SplitMethod = models.SplitMethod(method)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		participants, err := s.getParticipants(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].Participants = participants
	}

	return expenses, nil
}

func (s *SQLiteStore) getParticipants(ctx context.Context, expenseID string) ([]models.Participant, error) {
	query := `
		SELECT p.user_id, u.name, p.amount_owed, p.percentage_owed
		FROM expense_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.expense_id = ?
		ORDER BY p.position
	`

	rows, err := s.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.UserID, &p.Name, &p.AmountOwed, &p.PercentageOwed); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}
