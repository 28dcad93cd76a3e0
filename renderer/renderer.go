// Package renderer turns ledger views into markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

//go:embed templates/*.md
var templates embed.FS

// List is a listing of entries over a period, newest first.
type List struct {
	Range   date.Range
	Entries []cashflow.Entry
	Totals  cashflow.Totals
}

// NewList builds a List from a sorted sequence of entries.
func NewList(r date.Range, entries []cashflow.Entry) *List {
	return &List{Range: r, Entries: entries, Totals: cashflow.TotalsOf(slices.Values(entries))}
}

// Balance is the current balance of a ledger.
type Balance struct {
	Balance cashflow.Money
	Totals  cashflow.Totals
}

// Report is the full statement of a ledger, one section per month.
type Report struct {
	Range   date.Range
	Balance cashflow.Money
	Totals  cashflow.Totals
	Months  []*Month
}

// Month holds the entries of one calendar month, oldest first.
type Month struct {
	Name    string
	Entries []cashflow.Entry
	Totals  cashflow.Totals
}

var monthNames = [...]string{"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno", "Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre"}

// MonthName returns the italian name of m.
func MonthName(m time.Month) string { return monthNames[m-1] }

// NewReport groups ascending entries by month.
func NewReport(l *cashflow.Ledger) *Report {
	r := &Report{Balance: l.Balance(), Totals: l.Totals()}
	var current *Month
	var key date.Date
	for e := range l.Ascending() {
		start := e.Date.StartOf(date.Monthly)
		if current == nil || start != key {
			key = start
			name := "Senza data"
			if !e.Date.IsZero() {
				name = fmt.Sprintf("%s %d", MonthName(e.Date.Month()), e.Date.Year())
			}
			current = &Month{Name: name}
			r.Months = append(r.Months, current)
		}
		current.Entries = append(current.Entries, e)
	}
	for _, m := range r.Months {
		m.Totals = cashflow.TotalsOf(slices.Values(m.Entries))
	}
	if len(r.Months) > 0 {
		first, last := r.Months[0].Entries[0].Date, r.Months[len(r.Months)-1].Entries
		r.Range = date.Between(first, last[len(last)-1].Date)
	}
	return r
}

// RenderList renders a listing.
func RenderList(l *List) string {
	return renderTemplate("list", "list.md", map[string]string{"entries": "entries.md"}, l)
}

// RenderBalance renders the balance and totals.
func RenderBalance(b *Balance) string {
	return renderTemplate("balance", "balance.md", map[string]string{"totals": "totals.md"}, b)
}

// RenderReport renders the full statement.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"entries": "entries.md",
		"totals":  "totals.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

var funcs = template.FuncMap{
	"localDate": func(d date.Date) string {
		if d.IsZero() {
			return "-"
		}
		return d.Format(date.LocalFormat)
	},
	"cell": escapeCell,
	"signed": func(e cashflow.Entry) string {
		return e.Kind.Sign() + e.Amount.String()
	},
	"badge": func(e cashflow.Entry) string {
		switch {
		case e.ToBeReimbursed && e.Reimbursed:
			return "Rimborsato"
		case e.ToBeReimbursed:
			return "Da Rimborsare"
		default:
			return ""
		}
	},
}

// escapeCell makes s safe inside a markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
