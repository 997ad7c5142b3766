// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"splitledger/internal/models"
)

// Not-found conditions are distinct from validation errors and from opaque
// persistence faults; the transport layer maps them to not-found responses.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrEmailExists     = errors.New("email already registered")
)

// Store defines the interface for user and expense persistence.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The user's ID, serial ID, and
	// CreatedAt must already be set. Returns ErrEmailExists if the email
	// is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by storage ID.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. IDs that do not
	// exist are omitted from the result; callers use this for existence
	// checks before computing a split.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// NextSerialID atomically increments and returns the counter for the
	// given entity kind, creating it lazily on first use. The increment is
	// a single indivisible step, never a read-then-write pair.
	NextSerialID(ctx context.Context, kind string) (int64, error)

	// CreateExpense persists a new expense with its participant list.
	// The expense ID and CreatedAt are assigned by the store if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpensesByCreator retrieves all expenses created by the user, with
	// payer and participant names resolved.
	GetExpensesByCreator(ctx context.Context, userID string) ([]models.Expense, error)

	// GetExpensesByParticipant retrieves all expenses in which the user
	// appears as a participant, with payer and participant names resolved.
	GetExpensesByParticipant(ctx context.Context, userID string) ([]models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}

// KindUser is the counter kind for user serial IDs.
const KindUser = "user"
