package cashflow

import (
	"fmt"
	"strings"
)

// Kind tells whether an entry adds to or subtracts from the balance.
type Kind string

const (
	// Income is money coming in.
	Income Kind = "ENTRATA"
	// Expense is money going out.
	Expense Kind = "USCITA"
)

// ParseKind parses a kind as typed by a user.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entrata", "income", "in", "+":
		return Income, nil
	case "uscita", "expense", "out", "-":
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown kind %q, want one of entrata, uscita", s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool { return k == Income || k == Expense }

// Label returns the human label.
func (k Kind) Label() string {
	switch k {
	case Income:
		return "Entrata"
	case Expense:
		return "Uscita"
	default:
		return string(k)
	}
}

// Sign returns "+" for income, "-" otherwise.
func (k Kind) Sign() string {
	if k == Income {
		return "+"
	}
	return "-"
}

func (k Kind) String() string { return string(k) }
