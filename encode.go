package cashflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNothingToExport is returned by exports of an empty collection. Nothing
// has been written.
var ErrNothingToExport = errors.New("Nessun dato da esportare.")

// JSONFilename is the conventional name of the JSON backup.
const JSONFilename = "FLUDAT.json"

// EncodeEntries writes entries as a JSON array indented with two spaces.
// It is both the backup format and the durable store format.
func EncodeEntries(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode entries: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write entries: %w", err)
	}
	return nil
}

// ExportJSON writes the JSON backup of entries.
// It returns ErrNothingToExport when there is no entry.
func ExportJSON(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}
	return EncodeEntries(w, entries)
}
