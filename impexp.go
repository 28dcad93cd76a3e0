package cashflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
)

// this file contains functions to read the import/export format.
// Files written by older versions of the application must keep importing.

// ErrNotACollection is wrapped by the ImportError returned when the payload
// is valid JSON but not an array.
var ErrNotACollection = errors.New("il file non contiene un elenco di operazioni")

// ImportError is returned when a payload cannot be imported at all.
// The ledger must then be left untouched.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string { return "importazione non riuscita: " + e.Err.Error() }
func (e *ImportError) Unwrap() error { return e.Err }

// ImportJSON reads an array of entries.
//
// Records are decoded leniently: elements that are not objects are dropped,
// fields that cannot be decoded are left to their zero value, a missing id
// is minted and the legacy "type" property is read as the kind. Every such
// repair is logged. The result can be checked with Entry.Check.
func ImportJSON(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ImportError{Err: err}
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ImportError{Err: err}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, &ImportError{Err: ErrNotACollection}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ImportError{Err: err}
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			log.Printf("import: element #%d is not an object, skipped: %s", i, item)
			continue
		}
		e, err := decodeEntry(item)
		if err != nil {
			log.Printf("import: element #%d: %v", i, err)
		}
		entries = append(entries, e.Normalize())
	}
	return entries, nil
}

// ImportJSONStrict is like ImportJSON but fails when any entry has a problem.
func ImportJSONStrict(r io.Reader) ([]Entry, error) {
	entries, err := ImportJSON(r)
	if err != nil {
		return nil, err
	}
	var errs error
	for _, e := range entries {
		errs = errors.Join(errs, e.Check())
	}
	if errs != nil {
		return nil, &ImportError{Err: errs}
	}
	return entries, nil
}

// decodeEntry decodes every known property independently and returns the
// entry with all the problems met.
func decodeEntry(item json.RawMessage) (Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return Entry{}, err
	}

	var e Entry
	var errs error
	decode := func(name string, v any) {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			return
		}
		if err := json.Unmarshal(raw, v); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	e.ID = looseString(fields["id"])
	if e.ID == "" {
		e.ID = NewID()
	}

	var kind string
	if _, ok := fields["kind"]; ok {
		decode("kind", &kind)
	} else {
		decode("type", &kind)
	}
	if k, err := ParseKind(kind); err == nil {
		e.Kind = k
	} else {
		e.Kind = Kind(kind)
		errs = errors.Join(errs, err)
	}

	decode("description", &e.Description)
	decode("amount", &e.Amount)
	decode("date", &e.Date)
	decode("toBeReimbursed", &e.ToBeReimbursed)
	decode("reimbursed", &e.Reimbursed)

	if errs != nil {
		return e, fmt.Errorf("entry %q: %w", e.ID, errs)
	}
	return e, nil
}

// looseString reads a JSON string or number as a string.
func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return ""
}
