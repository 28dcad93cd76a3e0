package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period used to select entries in listings.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses a period name, in english or italian.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day", "giorno":
		return Daily, nil
	case "weekly", "week", "settimana":
		return Weekly, nil
	case "monthly", "month", "mese":
		return Monthly, nil
	case "quarterly", "quarter", "trimestre":
		return Quarterly, nil
	case "yearly", "year", "anno":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}
