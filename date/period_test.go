package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{"A day", New(2025, time.September, 8), Daily, Range{New(2025, time.September, 8), New(2025, time.September, 8)}},
		{"A Wednesday", New(2025, time.September, 10), Weekly, Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{"A Sunday", New(2025, time.September, 14), Weekly, Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{"A leap year month", New(2024, time.February, 15), Monthly, Range{New(2024, time.February, 1), New(2024, time.February, 29)}},
		{"Q2", New(2025, time.May, 20), Quarterly, Range{New(2025, time.April, 1), New(2025, time.June, 30)}},
		{"Q4", New(2025, time.November, 2), Quarterly, Range{New(2025, time.October, 1), New(2025, time.December, 31)}},
		{"A year", New(2025, time.September, 8), Yearly, Range{New(2025, time.January, 1), New(2025, time.December, 31)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.period, got, tc.want)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	march := NewRange(New(2024, time.March, 10), Monthly)
	testCases := []struct {
		name string
		r    Range
		in   Date
		want bool
	}{
		{"first day", march, New(2024, time.March, 1), true},
		{"last day", march, New(2024, time.March, 31), true},
		{"day before", march, New(2024, time.February, 29), false},
		{"day after", march, New(2024, time.April, 1), false},
		{"open start", Between(Date{}, New(2024, time.March, 1)), New(1999, time.January, 1), true},
		{"open end", Between(New(2024, time.March, 1), Date{}), New(2099, time.January, 1), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Contains(tc.in); got != tc.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tc.r, tc.in, got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"week", Weekly, false},
		{"Month", Monthly, false},
		{"trimestre", Quarterly, false},
		{"anno", Yearly, false},
		{"unknown", Daily, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Errorf("ParsePeriod() error = %v, wantErr %v", err, tc.wantErr)
				return
			}
			if got != tc.want {
				t.Errorf("ParsePeriod() = %v, want %v", got, tc.want)
			}
		})
	}
}
