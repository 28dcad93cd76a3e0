package cashflow

import (
	"errors"
	"testing"

	"github.com/etnz/cashflow/date"
)

func TestDraft_Submit(t *testing.T) {
	today := date.MustParse("2024-06-15")
	testCases := []struct {
		name       string
		draft      Draft
		wantErr    bool
		wantAmount Money
		wantDate   date.Date
		wantKind   Kind
	}{
		{"dot decimal", Draft{Description: "pane", Amount: "3.50"}, false, EUR(3.5), today, Expense},
		{"comma decimal", Draft{Description: "pane", Amount: "3,50"}, false, EUR(3.5), today, Expense},
		{"thousands", Draft{Description: "affitto", Amount: "1.200,00", Kind: Income}, false, EUR(1200), today, Income},
		{"rounded", Draft{Description: "x", Amount: "10.005"}, false, EUR(10.01), today, Expense},
		{"explicit date", Draft{Description: "x", Amount: "1", Date: "2024-01-05"}, false, EUR(1), date.MustParse("2024-01-05"), Expense},
		{"timestamp date", Draft{Description: "x", Amount: "1", Date: "2024-01-05T12:00:00.000Z"}, false, EUR(1), date.MustParse("2024-01-05"), Expense},
		{"empty description", Draft{Description: "  ", Amount: "1"}, true, Money{}, date.Date{}, ""},
		{"empty amount", Draft{Description: "x"}, true, Money{}, date.Date{}, ""},
		{"not a number", Draft{Description: "x", Amount: "dieci"}, true, Money{}, date.Date{}, ""},
		{"zero", Draft{Description: "x", Amount: "0"}, true, Money{}, date.Date{}, ""},
		{"rounds to zero", Draft{Description: "x", Amount: "0.001"}, true, Money{}, date.Date{}, ""},
		{"negative", Draft{Description: "x", Amount: "-5"}, true, Money{}, date.Date{}, ""},
		{"bad date", Draft{Description: "x", Amount: "1", Date: "31/12/2024"}, true, Money{}, date.Date{}, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := tc.draft.Submit(today)
			if tc.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Submit() error = %v, want a ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Submit() unexpected error: %v", err)
			}
			if in.Op != OpAdd || in.Entry.ID == "" {
				t.Errorf("Submit() = %v %q, want an add with a fresh id", in.Op, in.Entry.ID)
			}
			if !in.Entry.Amount.Equal(tc.wantAmount) {
				t.Errorf("Submit() amount = %v, want %v", in.Entry.Amount, tc.wantAmount)
			}
			if in.Entry.Date != tc.wantDate {
				t.Errorf("Submit() date = %v, want %v", in.Entry.Date, tc.wantDate)
			}
			if in.Entry.Kind != tc.wantKind {
				t.Errorf("Submit() kind = %v, want %v", in.Entry.Kind, tc.wantKind)
			}
		})
	}
}

func TestDraft_RequiredMessage(t *testing.T) {
	_, err := NewDraft().Submit(date.Today())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != MsgRequired {
		t.Errorf("Submit() error = %v, want %q", err, MsgRequired)
	}
}

func TestDraft_Reimbursement(t *testing.T) {
	d := NewDraft()
	d.SetReimbursed(true)
	if d.Reimbursed() {
		t.Errorf("SetReimbursed(true) took effect on an entry not to be reimbursed")
	}
	d.Description, d.Amount = "hotel", "120"
	in, err := d.Submit(date.MustParse("2024-03-01"))
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if in.Entry.ToBeReimbursed || in.Entry.Reimbursed {
		t.Errorf("Submit() = %+v, want both flags false", in.Entry)
	}

	d.SetToBeReimbursed(true)
	d.SetReimbursed(true)
	if !d.Reimbursed() {
		t.Fatalf("SetReimbursed(true) ignored on an entry to be reimbursed")
	}
	d.SetToBeReimbursed(false)
	if d.Reimbursed() {
		t.Errorf("clearing ToBeReimbursed did not clear Reimbursed")
	}
}

func TestDraftOf(t *testing.T) {
	e := expense("a", "2024-01-05", 12.3, "cena")
	e.ToBeReimbursed, e.Reimbursed = true, true

	d := DraftOf(e)
	d.Description = "cena di lavoro"
	in, err := d.Submit(date.Today())
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if in.Op != OpUpdate || in.Entry.ID != "a" {
		t.Errorf("Submit() = %v %q, want update of a", in.Op, in.Entry.ID)
	}
	want := e
	want.Description = "cena di lavoro"
	if in.Entry.Description != want.Description || !in.Entry.Amount.Equal(want.Amount) ||
		in.Entry.Date != want.Date || !in.Entry.Reimbursed || !in.Entry.ToBeReimbursed {
		t.Errorf("Submit() = %+v, want %+v", in.Entry, want)
	}

	l := NewLedger(e)
	if _, err := l.Apply(in); err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	if got, _ := l.Get("a"); got.Description != "cena di lavoro" || l.Len() != 1 {
		t.Errorf("Apply() did not update in place: %+v", got)
	}
}
