package cashflow

import (
	"errors"
	"fmt"

	"github.com/etnz/cashflow/date"
	"github.com/google/uuid"
)

// Entry is a single income or expense.
//
// The JSON field order is the one used by the backup format.
type Entry struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	Description    string    `json:"description"`
	Amount         Money     `json:"amount"`
	Date           date.Date `json:"date"`
	ToBeReimbursed bool      `json:"toBeReimbursed"`
	Reimbursed     bool      `json:"reimbursed"`
}

// NewID returns a fresh, globally unique entry identifier.
func NewID() string { return uuid.NewString() }

// Normalize returns a copy of e where an entry that is not to be reimbursed is
// never marked as reimbursed.
func (e Entry) Normalize() Entry {
	if !e.ToBeReimbursed {
		e.Reimbursed = false
	}
	return e
}

// Signed returns the contribution of e to the balance.
func (e Entry) Signed() Money {
	if e.Kind == Income {
		return e.Amount
	}
	return e.Amount.Neg()
}

// Pending reports whether e is waiting for a reimbursement.
func (e Entry) Pending() bool { return e.ToBeReimbursed && !e.Reimbursed }

// Check reports every problem of e, without fixing any.
func (e Entry) Check() error {
	var errs error
	if e.ID == "" {
		errs = errors.Join(errs, errors.New("missing id"))
	}
	if !e.Kind.Valid() {
		errs = errors.Join(errs, fmt.Errorf("unknown kind %q", e.Kind))
	}
	if e.Description == "" {
		errs = errors.Join(errs, errors.New("empty description"))
	}
	if !e.Amount.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("amount %v is not positive", e.Amount))
	}
	if e.Date.IsZero() {
		errs = errors.Join(errs, errors.New("missing date"))
	}
	if e.Reimbursed && !e.ToBeReimbursed {
		errs = errors.Join(errs, errors.New("reimbursed but not to be reimbursed"))
	}
	if errs != nil {
		return fmt.Errorf("entry %q: %w", e.ID, errs)
	}
	return nil
}
