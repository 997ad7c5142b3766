// Package memory provides an in-memory implementation of the storage.Store
// interface, used by tests and as a persistence-free backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore keeps all records in maps guarded by one mutex, so it is safe
// for concurrent use. The mutex also makes the counter increment atomic, as
// the serial-ID contract requires.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	byEmail  map[string]string
	expenses []models.Expense
	counters map[string]int64
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		byEmail:  make(map[string]string),
		counters: make(map[string]int64),
	}
}

// CreateUser stores a new user, enforcing email uniqueness.
func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return storage.ErrEmailExists
	}

	stored := *user
	m.users[user.ID] = &stored
	m.byEmail[user.Email] = user.ID
	return nil
}

// GetUserByID retrieves a user by storage ID.
func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[id]
	if !exists {
		return nil, storage.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetUserByEmail retrieves a user by email address.
func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, exists := m.byEmail[email]
	if !exists {
		return nil, storage.ErrUserNotFound
	}
	copied := *m.users[id]
	return &copied, nil
}

// GetUsersByIDs retrieves multiple users keyed by ID; missing IDs are omitted.
func (m *MemoryStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if user, exists := m.users[id]; exists {
			copied := *user
			result[id] = &copied
		}
	}
	return result, nil
}

// NextSerialID increments and returns the counter for the given kind.
// The store mutex makes read-increment-write a single indivisible step.
func (m *MemoryStore) NextSerialID(ctx context.Context, kind string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[kind]++
	return m.counters[kind], nil
}

// CreateExpense stores a new expense, assigning ID and CreatedAt if unset.
func (m *MemoryStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	stored := *expense
	stored.Participants = make([]models.Participant, len(expense.Participants))
	copy(stored.Participants, expense.Participants)
	m.expenses = append(m.expenses, stored)
	return nil
}

// GetExpensesByCreator retrieves all expenses created by the user.
func (m *MemoryStore) GetExpensesByCreator(ctx context.Context, userID string) ([]models.Expense, error) {
	return m.filterExpenses(func(e *models.Expense) bool {
		return e.CreatedBy.UserID == userID
	})
}

// GetExpensesByParticipant retrieves all expenses the user participates in.
func (m *MemoryStore) GetExpensesByParticipant(ctx context.Context, userID string) ([]models.Expense, error) {
	return m.filterExpenses(func(e *models.Expense) bool {
		for _, p := range e.Participants {
			if p.UserID == userID {
				return true
			}
		}
		return false
	})
}

func (m *MemoryStore) filterExpenses(match func(*models.Expense) bool) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.Expense
	for i := range m.expenses {
		if !match(&m.expenses[i]) {
			continue
		}
		copied := m.expenses[i]
		copied.CreatedBy.Name = m.resolveName(copied.CreatedBy.UserID)
		copied.Participants = make([]models.Participant, len(m.expenses[i].Participants))
		copy(copied.Participants, m.expenses[i].Participants)
		for j := range copied.Participants {
			copied.Participants[j].Name = m.resolveName(copied.Participants[j].UserID)
		}
		result = append(result, copied)
	}
	return result, nil
}

// resolveName mirrors the join the SQLite store does on read.
// Callers must hold the mutex.
func (m *MemoryStore) resolveName(userID string) string {
	if user, exists := m.users[userID]; exists {
		return user.Name
	}
	return ""
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
