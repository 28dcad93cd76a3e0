package cashflow

import (
	"fmt"
	"iter"
	"log"
	"slices"
	"sort"

	"github.com/etnz/cashflow/date"
)

// Ledger is the collection of entries of a single user.
//
// Entries are kept in collection order (the order they were added in), views
// sort them by date on demand. A Ledger is not safe for concurrent use.
type Ledger struct {
	entries     []Entry
	subscribers []subscriber
	nextSub     int
}

// NewLedger creates a ledger holding a copy of entries.
func NewLedger(entries ...Entry) *Ledger {
	l := &Ledger{}
	l.entries = normalizeAll(entries)
	return l
}

func normalizeAll(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Normalize())
	}
	return out
}

func (l *Ledger) index(id string) int {
	return slices.IndexFunc(l.entries, func(e Entry) bool { return e.ID == id })
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Get returns the entry with this id.
func (l *Ledger) Get(id string) (Entry, bool) {
	i := l.index(id)
	if i < 0 {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Add appends e under a freshly minted id and returns the stored entry.
func (l *Ledger) Add(e Entry) (Entry, error) {
	e.ID = NewID()
	return l.add(e)
}

func (l *Ledger) add(e Entry) (Entry, error) {
	if err := validate(e); err != nil {
		return Entry{}, err
	}
	e = e.Normalize()
	l.entries = append(l.entries, e)
	l.notify(OpAdd, e)
	return e, nil
}

// Update replaces the entry with the same id. An unknown id is added instead,
// keeping the id, or minting one if it is empty.
func (l *Ledger) Update(e Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	i := l.index(e.ID)
	if e.ID == "" || i < 0 {
		if e.ID == "" {
			e.ID = NewID()
		}
		_, err := l.add(e)
		return err
	}
	e = e.Normalize()
	l.entries[i] = e
	l.notify(OpUpdate, e)
	return nil
}

// Remove deletes the entry with this id. It returns false, and notifies no
// one, if there was none.
func (l *Ledger) Remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	e := l.entries[i]
	l.entries = slices.Delete(l.entries, i, i+1)
	l.notify(OpRemove, e)
	return true
}

// ReplaceAll replaces the whole collection with entries.
// Entries are not validated, only normalized.
func (l *Ledger) ReplaceAll(entries []Entry) {
	l.entries = normalizeAll(entries)
	l.notify(OpReplace, Entry{})
}

// Apply executes a validated intent.
func (l *Ledger) Apply(in Intent) (Entry, error) {
	switch in.Op {
	case OpAdd:
		e := in.Entry
		if e.ID == "" || l.index(e.ID) >= 0 {
			e.ID = NewID()
		}
		return l.add(e)
	case OpUpdate:
		e := in.Entry
		if e.ID == "" {
			e.ID = NewID()
		}
		if err := l.Update(e); err != nil {
			return Entry{}, err
		}
		e, _ = l.Get(e.ID)
		return e, nil
	case OpRemove:
		e, ok := l.Get(in.Entry.ID)
		if !ok {
			return Entry{}, fmt.Errorf("unknown entry %q", in.Entry.ID)
		}
		l.Remove(e.ID)
		return e, nil
	default:
		return Entry{}, fmt.Errorf("unsupported intent %v", in.Op)
	}
}

// Balance returns the sum of incomes minus the sum of expenses.
func (l *Ledger) Balance() Money {
	var balance Money
	for _, e := range l.entries {
		balance = balance.Add(e.Signed())
	}
	return balance
}

// Totals summarize a ledger.
type Totals struct {
	Income     Money // sum of incomes
	Expense    Money // sum of expenses
	Pending    Money // expenses waiting for a reimbursement
	Reimbursed Money // expenses already reimbursed
	Count      int
}

// Balance returns income minus expense.
func (t Totals) Balance() Money { return t.Income.Sub(t.Expense) }

// Totals returns the aggregated amounts of the ledger.
func (l *Ledger) Totals() Totals { return TotalsOf(slices.Values(l.entries)) }

// TotalsOf aggregates entries.
func TotalsOf(entries iter.Seq[Entry]) Totals {
	var t Totals
	for e := range entries {
		t.Count++
		if e.Kind == Income {
			t.Income = t.Income.Add(e.Amount)
		} else {
			t.Expense = t.Expense.Add(e.Amount)
		}
		switch {
		case e.Pending():
			t.Pending = t.Pending.Add(e.Amount)
		case e.ToBeReimbursed && e.Reimbursed:
			t.Reimbursed = t.Reimbursed.Add(e.Amount)
		}
	}
	return t
}

// Entries returns an iterator over the entries in collection order.
func (l *Ledger) Entries() iter.Seq2[int, Entry] { return slices.All(l.entries) }

// Snapshot returns a copy of the entries in collection order.
func (l *Ledger) Snapshot() []Entry { return slices.Clone(l.entries) }

// Sorted returns the entries, newest first. Entries on the same day keep
// their collection order. The ledger itself is not reordered.
func (l *Ledger) Sorted() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		view := l.Snapshot()
		sort.SliceStable(view, func(i, j int) bool { return view[i].Date.After(view[j].Date) })
		for _, e := range view {
			if !yield(e) {
				return
			}
		}
	}
}

// Ascending returns the entries, oldest first. Entries on the same day keep
// their collection order.
func (l *Ledger) Ascending() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		view := l.Snapshot()
		sort.SliceStable(view, func(i, j int) bool { return view[i].Date.Before(view[j].Date) })
		for _, e := range view {
			if !yield(e) {
				return
			}
		}
	}
}

// Within filters a sequence of entries to those booked in r.
func Within(r date.Range, entries iter.Seq[Entry]) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for e := range entries {
			if r.Contains(e.Date) && !yield(e) {
				return
			}
		}
	}
}

// Check reports the problems of all entries.
func (l *Ledger) Check() []error {
	var errs []error
	for _, e := range l.entries {
		if err := e.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		log.Printf("%d entries out of %d have problems", len(errs), len(l.entries))
	}
	return errs
}
