package cashflow

import (
	"strings"

	"github.com/etnz/cashflow/date"
)

// Intent is a validated request to mutate a ledger.
type Intent struct {
	Op    Op
	Entry Entry
}

// Draft holds the raw input of an entry form, before validation.
//
// The reimbursement flags are only reachable through setters so that an entry
// not to be reimbursed is never marked as reimbursed, even while it is edited.
type Draft struct {
	ID          string // empty for a new entry
	Kind        Kind
	Description string
	Amount      string
	Date        string

	toBeReimbursed bool
	reimbursed     bool
}

// NewDraft returns an empty form for a new expense.
func NewDraft() *Draft { return &Draft{Kind: Expense} }

// DraftOf returns a form pre-filled with e, to edit it.
func DraftOf(e Entry) *Draft {
	e = e.Normalize()
	d := &Draft{
		ID:             e.ID,
		Kind:           e.Kind,
		Description:    e.Description,
		Date:           e.Date.String(),
		toBeReimbursed: e.ToBeReimbursed,
		reimbursed:     e.Reimbursed,
	}
	if !e.Amount.IsZero() {
		d.Amount = e.Amount.Decimal().String()
	}
	return d
}

// ToBeReimbursed returns the state of the "to be reimbursed" flag.
func (d *Draft) ToBeReimbursed() bool { return d.toBeReimbursed }

// Reimbursed returns the state of the "reimbursed" flag.
func (d *Draft) Reimbursed() bool { return d.reimbursed }

// SetToBeReimbursed sets the flag. Clearing it also clears Reimbursed.
func (d *Draft) SetToBeReimbursed(v bool) {
	d.toBeReimbursed = v
	if !v {
		d.reimbursed = false
	}
}

// SetReimbursed sets the flag. It stays false while the entry is not to be
// reimbursed.
func (d *Draft) SetReimbursed(v bool) {
	d.reimbursed = v && d.toBeReimbursed
}

// Submit validates the draft. An empty date defaults to today. A draft with
// an ID becomes an update, otherwise an add under a new id.
func (d *Draft) Submit(today date.Date) (Intent, error) {
	desc := strings.TrimSpace(d.Description)
	if desc == "" || strings.TrimSpace(d.Amount) == "" {
		return Intent{}, &ValidationError{Message: MsgRequired}
	}
	amount, err := ParseMoney(d.Amount)
	if err != nil || !amount.Round().IsPositive() {
		return Intent{}, &ValidationError{Field: "amount", Message: MsgRequired}
	}

	on := today
	if s := strings.TrimSpace(d.Date); s != "" {
		on, err = date.Parse(s)
		if err != nil {
			return Intent{}, &ValidationError{Field: "date", Message: "Data non valida: " + s}
		}
	}

	kind := d.Kind
	if kind == "" {
		kind = Expense
	}
	if !kind.Valid() {
		return Intent{}, &ValidationError{Field: "kind", Message: "Tipo di operazione non valido: " + string(kind)}
	}

	e := Entry{
		ID:             d.ID,
		Kind:           kind,
		Description:    desc,
		Amount:         amount.Round(),
		Date:           on,
		ToBeReimbursed: d.toBeReimbursed,
		Reimbursed:     d.reimbursed,
	}.Normalize()

	if e.ID == "" {
		e.ID = NewID()
		return Intent{Op: OpAdd, Entry: e}, nil
	}
	return Intent{Op: OpUpdate, Entry: e}, nil
}
