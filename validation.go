package cashflow

import "fmt"

// MsgRequired is the message shown when an entry misses its description or amount.
const MsgRequired = "Per favore, compila descrizione e importo (maggiore di zero)."

// ValidationError is returned when an entry cannot be accepted as is.
// Message is meant for the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validate checks the preconditions of any entry accepted by the ledger.
func validate(e Entry) error {
	if e.Description == "" {
		return &ValidationError{Field: "description", Message: MsgRequired}
	}
	if !e.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Message: MsgRequired}
	}
	return nil
}
