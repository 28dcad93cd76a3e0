package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/google/subcommands"
)

type addCmd struct {
	kind           string
	description    string
	amount         string
	date           string
	toBeReimbursed bool
	reimbursed     bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new income or expense" }
func (*addCmd) Usage() string {
	return `flucas add [-k entrata|uscita] -m <description> -a <amount> [-d <date>] [-r] [-rr]

  Records a new entry. The kind defaults to uscita (expense), the date to today.
  Use -r for an expense to be reimbursed, and -rr once it has been.

Usage Examples:
$ flucas add -m "spesa" -a 42,30
$ flucas add -k entrata -m "stipendio" -a 1.500,00 -d 2024-01-27
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "uscita", "Kind of entry: entrata (income) or uscita (expense).")
	f.StringVar(&c.description, "m", "", "Description.")
	f.StringVar(&c.amount, "a", "", "Amount in euros, greater than zero.")
	f.StringVar(&c.date, "d", "", "Date of the entry. Defaults to today.")
	f.BoolVar(&c.toBeReimbursed, "r", false, "The expense is to be reimbursed.")
	f.BoolVar(&c.reimbursed, "rr", false, "The expense has been reimbursed, implies -r.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := cashflow.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitUsageError
	}
	d := cashflow.NewDraft()
	d.Kind = kind
	d.Description = c.description
	d.Amount = c.amount
	d.Date = c.date
	d.SetToBeReimbursed(c.toBeReimbursed || c.reimbursed)
	d.SetReimbursed(c.reimbursed)

	intent, err := d.Submit(date.Today())
	if err != nil {
		reportValidation(err)
		return subcommands.ExitFailure
	}

	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	e, err := ledger.Apply(intent)
	if err != nil {
		reportValidation(err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Operazione aggiunta: %s\n", e.ID)
	fmt.Fprintf(stdout, "Saldo Attuale: %s\n", ledger.Balance())
	return subcommands.ExitSuccess
}
