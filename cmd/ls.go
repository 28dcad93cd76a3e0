package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type lsCmd struct {
	period string
	start  string
	date   string
	head   int
	tail   int
}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "list entries, newest first" }
func (*lsCmd) Usage() string {
	return `flucas ls [-p <period> | -s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>]

  Lists entries, newest first, with options for filtering and limiting the output.
  Without any date flag all entries are listed.
`
}

func (c *lsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year) containing the end date.")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range. Defaults to today.")
	f.IntVar(&c.head, "head", 0, "Show only the first N entries.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N entries.")
}

// dateRange returns the range selected by the flags.
func (c *lsCmd) dateRange() (date.Range, error) {
	if c.start == "" && c.date == "" && c.period == "" {
		return date.Range{}, nil
	}
	end := date.Today()
	if c.date != "" {
		d, err := date.Parse(c.date)
		if err != nil {
			return date.Range{}, fmt.Errorf("invalid end date: %w", err)
		}
		end = d
	}
	if c.start != "" {
		start, err := date.Parse(c.start)
		if err != nil {
			return date.Range{}, fmt.Errorf("invalid start date: %w", err)
		}
		return date.Between(start, end), nil
	}
	if c.period == "" {
		return date.Between(date.Date{}, end), nil
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		return date.Range{}, err
	}
	return date.NewRange(end, period), nil
}

func (c *lsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(stderr, "Errore: -head e -tail non possono essere usati insieme.")
		return subcommands.ExitUsageError
	}
	r, err := c.dateRange()
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitUsageError
	}

	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	entries := slices.Collect(cashflow.Within(r, ledger.Sorted()))
	if c.head > 0 && len(entries) > c.head {
		entries = entries[:c.head]
	}
	if c.tail > 0 && len(entries) > c.tail {
		entries = entries[len(entries)-c.tail:]
	}

	printMarkdown(renderer.RenderList(renderer.NewList(r, entries)))
	return subcommands.ExitSuccess
}
