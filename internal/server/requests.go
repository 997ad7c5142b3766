package server

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"splitledger/internal/calculator"
	"splitledger/internal/models"
	"splitledger/internal/service"
)

// Request shape checks run declaratively before the core operations: each
// request struct knows its own field constraints. Cross-field consistency
// (percentage and amount sums) stays in the calculator.

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	mobilePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// fieldError reports which field violated which constraint.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationError aggregates every failed field constraint in a request.
type validationError struct {
	fields []fieldError
}

func (e *validationError) Error() string {
	msgs := make([]string, len(e.fields))
	for i, f := range e.fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return strings.Join(msgs, "; ")
}

func (e *validationError) add(field, message string) {
	e.fields = append(e.fields, fieldError{Field: field, Message: message})
}

func (e *validationError) orNil() error {
	if len(e.fields) == 0 {
		return nil
	}
	return e
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

func (r *registerRequest) validate() error {
	verr := &validationError{}
	if strings.TrimSpace(r.Name) == "" {
		verr.add("name", "Name is required")
	}
	if !emailPattern.MatchString(r.Email) {
		verr.add("email", "Invalid email format")
	}
	if !mobilePattern.MatchString(r.Mobile) {
		verr.add("mobile", "Invalid mobile phone number")
	}
	if r.Password == "" {
		verr.add("password", "Password is required")
	}
	return verr.orNil()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) validate() error {
	verr := &validationError{}
	if r.Email == "" {
		verr.add("email", "Email is required")
	}
	if r.Password == "" {
		verr.add("password", "Password is required")
	}
	return verr.orNil()
}

type shareRequest struct {
	UserID         string           `json:"userId"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	PercentageOwed *decimal.Decimal `json:"percentageOwed,omitempty"`
}

type createExpenseRequest struct {
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	SplitMethod  string          `json:"splitMethod"`
	Participants []shareRequest  `json:"participants"`
}

func (r *createExpenseRequest) validate() error {
	verr := &validationError{}
	if r.TotalAmount.IsNegative() {
		verr.add("totalAmount", "Total amount must be a positive number")
	}
	if _, ok := models.ParseSplitMethod(r.SplitMethod); !ok {
		verr.add("splitMethod", "Split method must be equal, exact, or percentage")
	}
	if len(r.Participants) == 0 {
		verr.add("participants", "At least one participant is required")
	}
	for i, p := range r.Participants {
		field := fmt.Sprintf("participants[%d]", i)
		if p.UserID == "" {
			verr.add(field+".userId", "Each participant must have a user ID")
		}
		if p.PercentageOwed != nil &&
			(p.PercentageOwed.IsNegative() || p.PercentageOwed.GreaterThan(decimal.NewFromInt(100))) {
			verr.add(field+".percentageOwed", "Percentage must be between 0 and 100")
		}
	}
	return verr.orNil()
}

// toInput converts a validated request into the service-layer submission.
func (r *createExpenseRequest) toInput(creatorID string) service.ExpenseInput {
	method, _ := models.ParseSplitMethod(r.SplitMethod)
	shares := make([]calculator.Share, len(r.Participants))
	for i, p := range r.Participants {
		shares[i] = calculator.Share{
			UserID:     p.UserID,
			Amount:     p.Amount,
			Percentage: p.PercentageOwed,
		}
	}
	return service.ExpenseInput{
		CreatedBy:   creatorID,
		TotalAmount: r.TotalAmount,
		SplitMethod: method,
		Shares:      shares,
	}
}
