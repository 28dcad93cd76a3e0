package cashflow

import "github.com/etnz/cashflow/date"

// EUR is a helper for test to create money from const.
func EUR(v float64) Money { return M(v) }

// income is a helper for test to create an income entry.
func income(id, day string, amount float64, desc string) Entry {
	return Entry{ID: id, Kind: Income, Description: desc, Amount: EUR(amount), Date: date.MustParse(day)}
}

// expense is a helper for test to create an expense entry.
func expense(id, day string, amount float64, desc string) Entry {
	return Entry{ID: id, Kind: Expense, Description: desc, Amount: EUR(amount), Date: date.MustParse(day)}
}
