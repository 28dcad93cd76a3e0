package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"google.golang.org/genai"
)

func testLedger() *cashflow.Ledger {
	return cashflow.NewLedger(
		cashflow.Entry{ID: "a", Kind: cashflow.Income, Description: "stipendio", Amount: cashflow.M(100), Date: date.New(2024, 1, 5)},
		cashflow.Entry{ID: "b", Kind: cashflow.Expense, Description: "affitto", Amount: cashflow.M(40), Date: date.New(2024, 2, 1)},
	)
}

func call(lib Library, name string, args map[string]any) *genai.FunctionResponse {
	return lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
}

func TestTools(t *testing.T) {
	lib := NewLibrary(Tools(testLedger()))

	testCases := []struct {
		name string
		args map[string]any
		want []string
		not  []string
	}{
		{"Saldo", nil, []string{"60,00 €"}, nil},
		{"Operazioni", map[string]any{"from": "2024-02-01"}, []string{"affitto"}, []string{"stipendio"}},
		{"Operazioni", map[string]any{}, []string{"affitto", "stipendio"}, nil},
		{"Rendiconto", nil, []string{"Gennaio 2024", "Febbraio 2024"}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(lib, tc.name, tc.args)
			out, ok := resp.Response["output"].(string)
			if !ok {
				t.Fatalf("%s() = %v, want an output", tc.name, resp.Response)
			}
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("%s() output does not contain %q:\n%s", tc.name, w, out)
				}
			}
			for _, w := range tc.not {
				if strings.Contains(out, w) {
					t.Errorf("%s() output contains %q:\n%s", tc.name, w, out)
				}
			}
		})
	}
}

func TestTools_Errors(t *testing.T) {
	lib := NewLibrary(Tools(testLedger()))
	testCases := []struct {
		name string
		args map[string]any
	}{
		{"Operazioni", map[string]any{"from": "ieri"}},
		{"Operazioni", map[string]any{"to": 42}},
		{"Registra", map[string]any{"kind": "USCITA", "description": "x", "amount": 0.0}},
		{"Registra", map[string]any{"kind": "REGALO", "description": "x", "amount": 1.0}},
		{"Unknown", nil},
	}
	for _, tc := range testCases {
		resp := call(lib, tc.name, tc.args)
		if _, ok := resp.Response["error"].(string); !ok {
			t.Errorf("%s(%v) = %v, want an error", tc.name, tc.args, resp.Response)
		}
	}
}

func TestRegistra(t *testing.T) {
	l := testLedger()
	lib := NewLibrary(Tools(l))
	resp := call(lib, "Registra", map[string]any{"kind": "uscita", "description": "cena", "amount": 12.5, "date": "2024-02-03", "toBeReimbursed": true})
	if _, ok := resp.Response["output"]; !ok {
		t.Fatalf("Registra() = %v", resp.Response)
	}
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	if got, want := l.Balance(), cashflow.M(47.5); !got.Equal(want) {
		t.Errorf("Balance() = %v, want %v", got, want)
	}
	e := l.Snapshot()[2]
	if !e.ToBeReimbursed || e.Date != date.New(2024, 2, 3) {
		t.Errorf("recorded entry = %+v", e)
	}
}

func TestExpert_CallInvalidQuestion(t *testing.T) {
	e := &Expert{Name: "Bookkeeper"}
	resp := e.Call(context.Background(), "1", map[string]any{"question": 3})
	if _, ok := resp.Response["error"].(string); !ok {
		t.Errorf("Call() = %v, want an error", resp.Response)
	}
}

func TestQuit(t *testing.T) {
	for _, in := range []string{"bye\n", " Ciao", "esci"} {
		if !quit(in) {
			t.Errorf("quit(%q) = false", in)
		}
	}
	if quit("ciao, qual è il saldo?") {
		t.Errorf("quit() ends the session on a question")
	}
}
