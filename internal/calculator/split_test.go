package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sumOwed(participants []models.Participant) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range participants {
		sum = sum.Add(p.AmountOwed)
	}
	return sum
}

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        decimal.Decimal
		method       models.SplitMethod
		shares       []Share
		wantErr      error
		validateFunc func(t *testing.T, participants []models.Participant)
	}{
		{
			name:   "equal split of 300 among three",
			total:  dec("300"),
			method: models.SplitEqual,
			shares: []Share{{UserID: "u1"}, {UserID: "u2"}, {UserID: "u3"}},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				for _, p := range participants {
					if !p.AmountOwed.Equal(dec("100")) {
						t.Errorf("%s owes %s, want 100", p.UserID, p.AmountOwed)
					}
					if p.PercentageOwed.Valid {
						t.Errorf("%s retained a percentage on an equal split", p.UserID)
					}
				}
				if got := sumOwed(participants); !got.Equal(dec("300")) {
					t.Errorf("owed amounts sum to %s, want 300", got)
				}
			},
		},
		{
			name:   "equal split preserves input order",
			total:  dec("90"),
			method: models.SplitEqual,
			shares: []Share{{UserID: "u3"}, {UserID: "u1"}, {UserID: "u2"}},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				want := []string{"u3", "u1", "u2"}
				for i, p := range participants {
					if p.UserID != want[i] {
						t.Errorf("participant %d = %s, want %s", i, p.UserID, want[i])
					}
				}
			},
		},
		{
			name:   "inexact equal division uses the literal quotient",
			total:  dec("100"),
			method: models.SplitEqual,
			shares: []Share{{UserID: "u1"}, {UserID: "u2"}, {UserID: "u3"}},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				// 100/3 is not representable; every participant gets the same
				// quotient and the sum drifts just below 100.
				for i := 1; i < len(participants); i++ {
					if !participants[i].AmountOwed.Equal(participants[0].AmountOwed) {
						t.Errorf("shares differ: %s vs %s", participants[i].AmountOwed, participants[0].AmountOwed)
					}
				}
				sum := sumOwed(participants)
				if sum.GreaterThan(dec("100")) || sum.LessThan(dec("99.99")) {
					t.Errorf("owed amounts sum to %s, want just under 100", sum)
				}
			},
		},
		{
			name:   "percentage split 50/30/20 of 1000",
			total:  dec("1000"),
			method: models.SplitPercentage,
			shares: []Share{
				{UserID: "u1", Percentage: decp("50")},
				{UserID: "u2", Percentage: decp("30")},
				{UserID: "u3", Percentage: decp("20")},
			},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				want := []string{"500", "300", "200"}
				for i, p := range participants {
					if !p.AmountOwed.Equal(dec(want[i])) {
						t.Errorf("%s owes %s, want %s", p.UserID, p.AmountOwed, want[i])
					}
					if !p.PercentageOwed.Valid {
						t.Errorf("%s lost its percentage on a percentage split", p.UserID)
					}
				}
				if got := sumOwed(participants); !got.Equal(dec("1000")) {
					t.Errorf("owed amounts sum to %s, want 1000", got)
				}
			},
		},
		{
			name:   "percentages summing to 90 fail",
			total:  dec("1000"),
			method: models.SplitPercentage,
			shares: []Share{
				{UserID: "u1", Percentage: decp("50")},
				{UserID: "u2", Percentage: decp("30")},
				{UserID: "u3", Percentage: decp("10")},
			},
			wantErr: ErrPercentageMismatch,
		},
		{
			name:   "percentages summing past 100 fail",
			total:  dec("200"),
			method: models.SplitPercentage,
			shares: []Share{
				{UserID: "u1", Percentage: decp("60")},
				{UserID: "u2", Percentage: decp("60")},
			},
			wantErr: ErrPercentageMismatch,
		},
		{
			name:   "fractional percentages summing to exactly 100 pass",
			total:  dec("150"),
			method: models.SplitPercentage,
			shares: []Share{
				{UserID: "u1", Percentage: decp("33.5")},
				{UserID: "u2", Percentage: decp("66.5")},
			},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				if got := sumOwed(participants); !got.Equal(dec("150")) {
					t.Errorf("owed amounts sum to %s, want 150", got)
				}
			},
		},
		{
			name:   "missing percentage fails",
			total:  dec("100"),
			method: models.SplitPercentage,
			shares: []Share{
				{UserID: "u1", Percentage: decp("50")},
				{UserID: "u2"},
			},
			wantErr: ErrMissingPercentage,
		},
		{
			name:   "exact split passes amounts through unchanged",
			total:  dec("1000"),
			method: models.SplitExact,
			shares: []Share{
				{UserID: "u1", Amount: decp("500")},
				{UserID: "u2", Amount: decp("300")},
				{UserID: "u3", Amount: decp("200")},
			},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				want := []string{"500", "300", "200"}
				for i, p := range participants {
					if !p.AmountOwed.Equal(dec(want[i])) {
						t.Errorf("%s owes %s, want %s", p.UserID, p.AmountOwed, want[i])
					}
				}
			},
		},
		{
			name:   "exact amounts not summing to total fail",
			total:  dec("1000"),
			method: models.SplitExact,
			shares: []Share{
				{UserID: "u1", Amount: decp("500")},
				{UserID: "u2", Amount: decp("300")},
				{UserID: "u3", Amount: decp("100")},
			},
			wantErr: ErrAmountMismatch,
		},
		{
			name:   "missing exact amount fails",
			total:  dec("100"),
			method: models.SplitExact,
			shares: []Share{
				{UserID: "u1", Amount: decp("100")},
				{UserID: "u2"},
			},
			wantErr: ErrMissingAmount,
		},
		{
			name:    "negative exact amount fails",
			total:   dec("100"),
			method:  models.SplitExact,
			shares:  []Share{{UserID: "u1", Amount: decp("-50")}, {UserID: "u2", Amount: decp("150")}},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "empty participant list fails",
			total:   dec("100"),
			method:  models.SplitEqual,
			shares:  []Share{},
			wantErr: ErrEmptyParticipants,
		},
		{
			name:    "negative total fails",
			total:   dec("-1"),
			method:  models.SplitEqual,
			shares:  []Share{{UserID: "u1"}},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "unknown split method fails",
			total:   dec("100"),
			method:  models.SplitMethod("weighted"),
			shares:  []Share{{UserID: "u1"}},
			wantErr: ErrInvalidSplitMethod,
		},
		{
			name:   "zero total equal split",
			total:  dec("0"),
			method: models.SplitEqual,
			shares: []Share{{UserID: "u1"}, {UserID: "u2"}},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				for _, p := range participants {
					if !p.AmountOwed.IsZero() {
						t.Errorf("%s owes %s, want 0", p.UserID, p.AmountOwed)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants, err := ComputeSplit(tt.total, tt.method, tt.shares)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeSplit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplit() unexpected error: %v", err)
			}
			if len(participants) != len(tt.shares) {
				t.Fatalf("got %d participants, want %d", len(participants), len(tt.shares))
			}
			for i, p := range participants {
				if p.UserID != tt.shares[i].UserID {
					t.Errorf("participant %d = %s, want %s (output must be parallel to input)", i, p.UserID, tt.shares[i].UserID)
				}
				if p.AmountOwed.IsNegative() {
					t.Errorf("%s owes negative amount %s", p.UserID, p.AmountOwed)
				}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, participants)
			}
		})
	}
}
