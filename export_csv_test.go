package cashflow

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExportCSV(t *testing.T) {
	hotel := expense("b", "2024-03-01", 1234.5, "hotel; Roma")
	hotel.ToBeReimbursed = true
	l := NewLedger(
		hotel,
		income("a", "2024-01-05", 100, "stipendio"),
		expense("c", "2024-02-10", 40, "spesa"),
	)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, l.Snapshot(), l.Balance()); err != nil {
		t.Fatalf("ExportCSV() unexpected error: %v", err)
	}

	want := "\ufeff" +
		"Data Operazione;Tipo Operazione;Descrizione;Importo (€);Da Rimborsare;Rimborsato\n" +
		"05/01/2024;ENTRATA;stipendio;100,00;NO;NO\n" +
		"10/02/2024;USCITA;spesa;40,00;NO;NO\n" +
		"01/03/2024;USCITA;\"hotel; Roma\";1.234,50;SI;NO\n" +
		"\n" +
		";;;;Saldo Attuale;-1.174,50 €\n"
	if got := buf.String(); got != want {
		t.Errorf("ExportCSV() =\n%q\nwant\n%q", got, want)
	}
}

func TestExportCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := ExportCSV(&buf, nil, Money{})
	if !errors.Is(err, ErrNothingToExport) {
		t.Errorf("ExportCSV() error = %v, want ErrNothingToExport", err)
	}
	if buf.Len() != 0 {
		t.Errorf("ExportCSV() wrote %q on an empty collection", buf.String())
	}
	if !strings.Contains(ErrNothingToExport.Error(), "Nessun dato da esportare") {
		t.Errorf("unexpected notice %q", ErrNothingToExport)
	}
}

// failingWriter accepts n writes then fails.
type failingWriter struct{ n int }

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errDiskFull
	}
	w.n--
	return len(p), nil
}

func TestExportCSV_WriteError(t *testing.T) {
	l := NewLedger(income("a", "2024-01-05", 100, "stipendio"))
	// BOM, rows and blank line succeed; the balance row fails.
	for n := range 4 {
		err := ExportCSV(&failingWriter{n: n}, l.Snapshot(), l.Balance())
		if !errors.Is(err, errDiskFull) {
			t.Errorf("ExportCSV() after %d writes error = %v, want %v", n, err, errDiskFull)
		}
	}
}
