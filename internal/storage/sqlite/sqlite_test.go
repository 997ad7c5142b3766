package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedUser(t *testing.T, store *SQLiteStore, serial int64, name, email string) *models.User {
	t.Helper()

	user := models.NewUser(name, email, "+1234567890", "hash")
	user.SerialID = serial
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return user
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and GetUserByID round-trip", func(t *testing.T) {
		user := seedUser(t, store, 1, "Alice", "alice@example.com")

		retrieved, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if retrieved.Email != "alice@example.com" {
			t.Errorf("Email = %s, want alice@example.com", retrieved.Email)
		}
		if retrieved.SerialID != 1 {
			t.Errorf("SerialID = %d, want 1", retrieved.SerialID)
		}
		if retrieved.Mobile != "+1234567890" {
			t.Errorf("Mobile = %s, want +1234567890", retrieved.Mobile)
		}
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		retrieved, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if retrieved.Name != "Alice" {
			t.Errorf("Name = %s, want Alice", retrieved.Name)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("Other Alice", "alice@example.com", "+1999999999", "hash")
		dup.SerialID = 99
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, storage.ErrEmailExists) {
			t.Fatalf("CreateUser() error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		if _, err := store.GetUserByID(ctx, "nope"); !errors.Is(err, storage.ErrUserNotFound) {
			t.Fatalf("GetUserByID() error = %v, want ErrUserNotFound", err)
		}
		if _, err := store.GetUserByEmail(ctx, "nope@example.com"); !errors.Is(err, storage.ErrUserNotFound) {
			t.Fatalf("GetUserByEmail() error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("GetUsersByIDs omits missing users", func(t *testing.T) {
		bob := seedUser(t, store, 2, "Bob", "bob@example.com")

		users, err := store.GetUsersByIDs(ctx, []string{bob.ID, "missing-id"})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(users) != 1 {
			t.Fatalf("got %d users, want 1", len(users))
		}
		if users[bob.ID] == nil {
			t.Error("expected Bob in result")
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, store, 1, "Alice", "alice@example.com")
	bob := seedUser(t, store, 2, "Bob", "bob@example.com")
	carol := seedUser(t, store, 3, "Carol", "carol@example.com")

	expense := &models.Expense{
		TotalAmount: decimal.RequireFromString("1000"),
		SplitMethod: models.SplitPercentage,
		CreatedBy:   models.UserRef{UserID: alice.ID},
		Participants: []models.Participant{
			{UserID: alice.ID, AmountOwed: decimal.RequireFromString("500"), PercentageOwed: decimal.NewNullDecimal(decimal.RequireFromString("50"))},
			{UserID: bob.ID, AmountOwed: decimal.RequireFromString("300"), PercentageOwed: decimal.NewNullDecimal(decimal.RequireFromString("30"))},
			{UserID: carol.ID, AmountOwed: decimal.RequireFromString("200"), PercentageOwed: decimal.NewNullDecimal(decimal.RequireFromString("20"))},
		},
	}

	t.Run("CreateExpense assigns ID and timestamp", func(t *testing.T) {
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
		if expense.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetExpensesByCreator resolves names and preserves order", func(t *testing.T) {
		expenses, err := store.GetExpensesByCreator(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetExpensesByCreator failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("got %d expenses, want 1", len(expenses))
		}

		got := expenses[0]
		if got.CreatedBy.Name != "Alice" {
			t.Errorf("payer name = %s, want Alice", got.CreatedBy.Name)
		}
		if !got.TotalAmount.Equal(decimal.RequireFromString("1000")) {
			t.Errorf("TotalAmount = %s, want 1000", got.TotalAmount)
		}
		if got.SplitMethod != models.SplitPercentage {
			t.Errorf("SplitMethod = %s, want percentage", got.SplitMethod)
		}

		wantNames := []string{"Alice", "Bob", "Carol"}
		wantOwed := []string{"500", "300", "200"}
		if len(got.Participants) != 3 {
			t.Fatalf("got %d participants, want 3", len(got.Participants))
		}
		for i, p := range got.Participants {
			if p.Name != wantNames[i] {
				t.Errorf("participant %d name = %s, want %s", i, p.Name, wantNames[i])
			}
			if !p.AmountOwed.Equal(decimal.RequireFromString(wantOwed[i])) {
				t.Errorf("participant %d owes %s, want %s", i, p.AmountOwed, wantOwed[i])
			}
			if !p.PercentageOwed.Valid {
				t.Errorf("participant %d lost its percentage", i)
			}
		}
	})

	t.Run("GetExpensesByParticipant finds the expense for a non-payer", func(t *testing.T) {
		expenses, err := store.GetExpensesByParticipant(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetExpensesByParticipant failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("got %d expenses, want 1", len(expenses))
		}
		if expenses[0].ID != expense.ID {
			t.Errorf("expense ID = %s, want %s", expenses[0].ID, expense.ID)
		}
	})

	t.Run("no expenses for an uninvolved user", func(t *testing.T) {
		dave := seedUser(t, store, 4, "Dave", "dave@example.com")

		expenses, err := store.GetExpensesByCreator(ctx, dave.ID)
		if err != nil {
			t.Fatalf("GetExpensesByCreator failed: %v", err)
		}
		if len(expenses) != 0 {
			t.Errorf("got %d expenses, want 0", len(expenses))
		}
	})

	t.Run("null percentage round-trips for equal splits", func(t *testing.T) {
		equal := &models.Expense{
			TotalAmount: decimal.RequireFromString("300"),
			SplitMethod: models.SplitEqual,
			CreatedBy:   models.UserRef{UserID: bob.ID},
			Participants: []models.Participant{
				{UserID: bob.ID, AmountOwed: decimal.RequireFromString("150")},
				{UserID: carol.ID, AmountOwed: decimal.RequireFromString("150")},
			},
		}
		if err := store.CreateExpense(ctx, equal); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.GetExpensesByCreator(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetExpensesByCreator failed: %v", err)
		}
		for _, p := range expenses[0].Participants {
			if p.PercentageOwed.Valid {
				t.Errorf("participant %s has a percentage on an equal split", p.UserID)
			}
		}
	})
}

func TestNextSerialID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("counter is created lazily and increments", func(t *testing.T) {
		for want := int64(1); want <= 3; want++ {
			got, err := store.NextSerialID(ctx, storage.KindUser)
			if err != nil {
				t.Fatalf("NextSerialID failed: %v", err)
			}
			if got != want {
				t.Errorf("NextSerialID = %d, want %d", got, want)
			}
		}
	})

	t.Run("kinds are independent", func(t *testing.T) {
		got, err := store.NextSerialID(ctx, "expense")
		if err != nil {
			t.Fatalf("NextSerialID failed: %v", err)
		}
		if got != 1 {
			t.Errorf("NextSerialID for fresh kind = %d, want 1", got)
		}
	})

	t.Run("no duplicates under concurrent assignment", func(t *testing.T) {
		const workers = 50

		ids := make(chan int64, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, err := store.NextSerialID(ctx, "concurrent")
				if err != nil {
					t.Errorf("NextSerialID failed: %v", err)
					return
				}
				ids <- id
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			if seen[id] {
				t.Errorf("duplicate serial ID %d", id)
			}
			seen[id] = true
		}
		if len(seen) != workers {
			t.Errorf("got %d unique IDs, want %d", len(seen), workers)
		}
	})
}

// Guards against accidental precision loss in the TEXT column round-trip.
func TestDecimalRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, store, 1, "Alice", "alice@example.com")

	third := decimal.RequireFromString("100").Div(decimal.NewFromInt(3))
	expense := &models.Expense{
		TotalAmount: decimal.RequireFromString("100"),
		SplitMethod: models.SplitEqual,
		CreatedBy:   models.UserRef{UserID: alice.ID},
		Participants: []models.Participant{
			{UserID: alice.ID, AmountOwed: third},
		},
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	expenses, err := store.GetExpensesByCreator(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetExpensesByCreator failed: %v", err)
	}
	got := expenses[0].Participants[0].AmountOwed
	if !got.Equal(third) {
		t.Errorf("AmountOwed = %s, want %s", got, third)
	}
	if got.String() != third.String() {
		t.Errorf("string form changed: %s vs %s", got, third)
	}
}
