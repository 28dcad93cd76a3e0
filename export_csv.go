package cashflow

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/etnz/cashflow/date"
)

// CSVFilename is the conventional name of the spreadsheet export.
const CSVFilename = "FLUCAS.csv"

// utf8BOM tells spreadsheet tools the file is UTF-8 encoded.
const utf8BOM = "\ufeff"

var csvHeader = []string{"Data Operazione", "Tipo Operazione", "Descrizione", "Importo (€)", "Da Rimborsare", "Rimborsato"}

func localDate(d date.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(date.LocalFormat)
}

func yesNo(b bool) string {
	if b {
		return "SI"
	}
	return "NO"
}

// ExportCSV writes entries for spreadsheets: one row per entry, oldest first,
// followed by a blank line and the balance.
// It returns ErrNothingToExport, without writing anything, when there is no entry.
func ExportCSV(w io.Writer, entries []Entry, balance Money) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}
	rows := slices.Clone(entries)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	records := make([][]string, 0, len(rows)+3)
	records = append(records, csvHeader)
	for _, e := range rows {
		records = append(records, []string{
			localDate(e.Date),
			string(e.Kind),
			e.Description,
			e.Amount.Localized(),
			yesNo(e.ToBeReimbursed),
			yesNo(e.Reimbursed),
		})
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}
	// blank line before the balance.
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}
	if err := cw.Write([]string{"", "", "", "", "Saldo Attuale", balance.String()}); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}
	return nil
}
