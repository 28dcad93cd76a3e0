// Package cashflow records the income and expense entries of a single person
// and derives the running balance from them.
//
// The core types are:
//   - Entry: one dated movement of money, either an income or an expense,
//     optionally flagged as to be reimbursed.
//   - Ledger: the owned, in-memory collection of entries. Every mutation
//     notifies the subscribers so that a presentation can persist and
//     re-render it.
//   - Draft: the raw input of an entry form, validated into an Intent.
//
// The package also handles the file interchange formats: a CSV export for
// spreadsheets and a JSON array used both as backup and import format.
//
// This package serves as the foundational logic for the `flucas`
// command-line tool. Durable persistence lives in the storage package.
package cashflow
