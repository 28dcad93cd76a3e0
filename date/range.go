package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the period that contains d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Between returns the range from 'from' to 'to'. A zero 'from' is an open start.
func Between(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	return r.To.IsZero() || !d.After(r.To)
}

func (r Range) String() string {
	switch {
	case r.From.IsZero() && r.To.IsZero():
		return "sempre"
	case r.From.IsZero():
		return fmt.Sprintf("fino al %s", r.To)
	case r.From == r.To:
		return r.From.String()
	}
	return fmt.Sprintf("%s..%s", r.From, r.To)
}
