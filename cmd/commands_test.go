package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/google/subcommands"
)

// seed adds a salary and a rent to a new store.
func seed(t *testing.T) string {
	t.Helper()
	store := newStore(t)
	for _, args := range [][]string{
		{"add", "-k", "entrata", "-m", "stipendio", "-a", "1.500,00", "-d", "2024-01-27"},
		{"add", "-m", "affitto", "-a", "600", "-d", "2024-02-01"},
	} {
		if r := run(t, store, "", args...); r.status != subcommands.ExitSuccess {
			t.Fatalf("%v failed: %s", args, r.stderr)
		}
	}
	return store
}

func TestAdd(t *testing.T) {
	store := newStore(t)
	r := run(t, store, "", "add", "-k", "entrata", "-m", " stipendio ", "-a", "1.500,50", "-d", "2024-01-27")
	if r.status != subcommands.ExitSuccess {
		t.Fatalf("add failed: %s", r.stderr)
	}
	if !strings.Contains(r.stdout, "Saldo Attuale: 1.500,50 €") {
		t.Errorf("add output = %q", r.stdout)
	}
	entries := load(t, store)
	if len(entries) != 1 {
		t.Fatalf("store has %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Kind != cashflow.Income || e.Description != "stipendio" || !e.Amount.Equal(cashflow.M(1500.5)) || e.Date != date.New(2024, 1, 27) {
		t.Errorf("saved entry = %+v", e)
	}
}

func TestAdd_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"no description", []string{"add", "-a", "10"}, cashflow.MsgRequired},
		{"zero amount", []string{"add", "-m", "x", "-a", "0"}, cashflow.MsgRequired},
		{"garbage amount", []string{"add", "-m", "x", "-a", "dieci"}, cashflow.MsgRequired},
		{"bad date", []string{"add", "-m", "x", "-a", "10", "-d", "ieri"}, "Data non valida"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStore(t)
			r := run(t, store, "", tc.args...)
			if r.status == subcommands.ExitSuccess {
				t.Errorf("%v succeeded", tc.args)
			}
			if !strings.Contains(r.stderr, tc.want) {
				t.Errorf("stderr = %q, want %q", r.stderr, tc.want)
			}
			if got := load(t, store); len(got) != 0 {
				t.Errorf("store changed: %v", got)
			}
		})
	}
}

func TestAdd_Reimbursed(t *testing.T) {
	store := newStore(t)
	if r := run(t, store, "", "add", "-m", "hotel", "-a", "120", "-rr"); r.status != subcommands.ExitSuccess {
		t.Fatalf("add -rr failed: %s", r.stderr)
	}
	e := load(t, store)[0]
	if !e.ToBeReimbursed || !e.Reimbursed {
		t.Errorf("add -rr saved %+v, want both flags", e)
	}
}

func TestEdit(t *testing.T) {
	store := seed(t)
	rent := load(t, store)[1]

	if r := run(t, store, "", "edit", "-id", rent.ID, "-a", "650", "-r"); r.status != subcommands.ExitSuccess {
		t.Fatalf("edit failed: %s", r.stderr)
	}
	got := load(t, store)
	if len(got) != 2 {
		t.Fatalf("store has %d entries, want 2", len(got))
	}
	if e := got[1]; !e.Amount.Equal(cashflow.M(650)) || !e.ToBeReimbursed || e.Description != "affitto" || e.Date != rent.Date {
		t.Errorf("edited entry = %+v", e)
	}

	if r := run(t, store, "", "edit", "-id", rent.ID, "-r=false"); r.status != subcommands.ExitSuccess {
		t.Fatalf("edit -r=false failed: %s", r.stderr)
	}
	if e := load(t, store)[1]; e.ToBeReimbursed || e.Reimbursed {
		t.Errorf("edit -r=false left %+v", e)
	}

	if r := run(t, store, "", "edit", "-id", "unknown", "-a", "1"); r.status == subcommands.ExitSuccess {
		t.Errorf("edit of an unknown entry succeeded")
	}
	if r := run(t, store, "", "edit", "-id", rent.ID, "-m", " ", "-a", "0"); r.status == subcommands.ExitSuccess {
		t.Errorf("edit to a zero amount succeeded")
	}
}

func TestRm(t *testing.T) {
	store := seed(t)
	salary := load(t, store)[0]

	r := run(t, store, "n\n", "rm", salary.ID)
	if r.status != subcommands.ExitSuccess || len(load(t, store)) != 2 {
		t.Errorf("rm answered no removed the entry: %v", r)
	}
	if !strings.Contains(r.stderr, MsgConfirmDelete) {
		t.Errorf("rm did not ask %q: %q", MsgConfirmDelete, r.stderr)
	}

	r = run(t, store, "s\n", "rm", salary.ID)
	if r.status != subcommands.ExitSuccess || len(load(t, store)) != 1 {
		t.Errorf("rm answered yes kept the entry: %v", r)
	}

	r = run(t, store, "", "rm", "-y", salary.ID)
	if r.status != subcommands.ExitFailure {
		t.Errorf("rm of a removed entry = %v, want failure", r.status)
	}
}

func TestLsAndBalance(t *testing.T) {
	store := seed(t)

	r := run(t, store, "", "ls")
	if r.status != subcommands.ExitSuccess {
		t.Fatalf("ls failed: %s", r.stderr)
	}
	if i, j := strings.Index(r.stdout, "affitto"), strings.Index(r.stdout, "stipendio"); i < 0 || j < 0 || i > j {
		t.Errorf("ls is not newest first:\n%s", r.stdout)
	}

	r = run(t, store, "", "ls", "-s", "2024-02-01", "-d", "2024-02-29")
	if strings.Contains(r.stdout, "stipendio") || !strings.Contains(r.stdout, "affitto") {
		t.Errorf("ls -s did not filter:\n%s", r.stdout)
	}

	r = run(t, store, "", "ls", "-head", "1", "-tail", "1")
	if r.status != subcommands.ExitUsageError {
		t.Errorf("ls -head -tail = %v, want usage error", r.status)
	}

	r = run(t, store, "", "balance")
	if !strings.Contains(r.stdout, "**900,00 €**") {
		t.Errorf("balance output:\n%s", r.stdout)
	}

	r = run(t, newStore(t), "", "ls")
	if !strings.Contains(r.stdout, "Nessuna operazione registrata.") {
		t.Errorf("ls on an empty ledger:\n%s", r.stdout)
	}
}

func TestExportImport(t *testing.T) {
	store := seed(t)
	dir := t.TempDir()
	backup := filepath.Join(dir, cashflow.JSONFilename)

	r := run(t, store, "", "export", "-o", backup, "json")
	if r.status != subcommands.ExitSuccess {
		t.Fatalf("export json failed: %s", r.stderr)
	}
	csvFile := filepath.Join(dir, cashflow.CSVFilename)
	if r := run(t, store, "", "export", "-o", csvFile, "csv"); r.status != subcommands.ExitSuccess {
		t.Fatalf("export csv failed: %s", r.stderr)
	}
	data, err := os.ReadFile(csvFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), ";;;;Saldo Attuale;900,00 €\n") {
		t.Errorf("csv export ends with %q", data[len(data)-40:])
	}

	other := newStore(t)
	if r := run(t, other, "", "import", backup); r.status != subcommands.ExitSuccess {
		t.Fatalf("import failed: %s", r.stderr)
	}
	if got := load(t, other); len(got) != 2 {
		t.Errorf("import loaded %d entries, want 2", len(got))
	}

	// replacing a non empty ledger needs a confirmation.
	if r := run(t, other, "n\n", "import", writeFile(t, "x.json", "[]")); r.status != subcommands.ExitSuccess || !strings.Contains(r.stderr, "Importazione annullata.") {
		t.Errorf("import answered no: %v", r)
	}
	if got := load(t, other); len(got) != 2 {
		t.Errorf("cancelled import changed the ledger: %v", got)
	}

	if r := run(t, other, "", "import", "-y", writeFile(t, "bad.json", `{"id":"a"}`)); r.status != subcommands.ExitFailure {
		t.Errorf("import of an object = %v, want failure", r.status)
	}
	if got := load(t, other); len(got) != 2 {
		t.Errorf("failed import changed the ledger: %v", got)
	}
}

func TestExport_Empty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	r := run(t, newStore(t), "", "export", "-o", out, "csv")
	if r.status != subcommands.ExitSuccess || !strings.Contains(r.stderr, cashflow.ErrNothingToExport.Error()) {
		t.Errorf("export of an empty ledger: %v", r)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("export of an empty ledger wrote a file")
	}
	if r := run(t, newStore(t), "", "export", "xml"); r.status != subcommands.ExitUsageError {
		t.Errorf("export xml = %v, want usage error", r.status)
	}
}

func TestQuery(t *testing.T) {
	store := seed(t)
	r := run(t, store, "", "query", `$[?(@.kind=="ENTRATA")].description`)
	if r.status != subcommands.ExitSuccess {
		t.Fatalf("query failed: %s", r.stderr)
	}
	if !strings.Contains(r.stdout, `"stipendio"`) || strings.Contains(r.stdout, "affitto") {
		t.Errorf("query output = %s", r.stdout)
	}
	if r := run(t, store, "", "query", "$[?("); r.status != subcommands.ExitFailure {
		t.Errorf("invalid query = %v, want failure", r.status)
	}
}

func TestReportAndFmt(t *testing.T) {
	store := seed(t)
	r := run(t, store, "", "report")
	for _, want := range []string{"# Rendiconto", "## Gennaio 2024", "## Febbraio 2024"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("report does not contain %q:\n%s", want, r.stdout)
		}
	}

	out := filepath.Join(t.TempDir(), "report.html")
	if r := run(t, store, "", "report", "-html", "-o", out); r.status != subcommands.ExitSuccess {
		t.Fatalf("report -html failed: %s", r.stderr)
	}
	if data, _ := os.ReadFile(out); !strings.Contains(string(data), "<h2>Gennaio 2024</h2>") {
		t.Errorf("html report:\n%s", data)
	}

	r = run(t, store, "", "fmt")
	if r.status != subcommands.ExitSuccess || !strings.Contains(r.stdout, "2 operazioni, 0 con problemi.") {
		t.Errorf("fmt: %v", r)
	}
}

func TestTopic(t *testing.T) {
	r := run(t, newStore(t), "", "topic", "dates")
	if r.status != subcommands.ExitSuccess || r.stdout == "" {
		t.Errorf("topic dates: %v", r)
	}
	if r := run(t, newStore(t), "", "topic", "nope"); r.status != subcommands.ExitFailure {
		t.Errorf("topic nope = %v, want failure", r.status)
	}
}
