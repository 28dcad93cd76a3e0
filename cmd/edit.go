package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/google/subcommands"
)

// optionalBool is a flag that knows whether it has been set.
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) String() string   { return strconv.FormatBool(b.value) }
func (b *optionalBool) IsBoolFlag() bool { return true }
func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.set, b.value = true, v
	return nil
}

type editCmd struct {
	id             string
	kind           string
	description    string
	amount         string
	date           string
	toBeReimbursed optionalBool
	reimbursed     optionalBool
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "modify an existing entry" }
func (*editCmd) Usage() string {
	return `flucas edit -id <id> [-k entrata|uscita] [-m <description>] [-a <amount>] [-d <date>] [-r=<bool>] [-rr=<bool>]

  Modifies an entry. Only the given fields change, the entry is validated
  again as a whole. Clearing -r also clears -rr.

Usage Examples:
$ flucas edit -id 0b8e0f0a-9f61-4a57-9c43-3d1f8b1c2f0e -rr
$ flucas edit -id 0b8e0f0a-9f61-4a57-9c43-3d1f8b1c2f0e -a 12,50 -r=false
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of the entry to modify.")
	f.StringVar(&c.kind, "k", "", "New kind: entrata (income) or uscita (expense).")
	f.StringVar(&c.description, "m", "", "New description.")
	f.StringVar(&c.amount, "a", "", "New amount.")
	f.StringVar(&c.date, "d", "", "New date.")
	f.Var(&c.toBeReimbursed, "r", "The expense is to be reimbursed.")
	f.Var(&c.reimbursed, "rr", "The expense has been reimbursed.")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" && f.NArg() == 1 {
		c.id = f.Arg(0)
	}
	if c.id == "" {
		fmt.Fprintln(stderr, "Errore: -id è obbligatorio.")
		return subcommands.ExitUsageError
	}

	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	e, ok := ledger.Get(c.id)
	if !ok {
		fmt.Fprintf(stderr, "Errore: operazione %q non trovata.\n", c.id)
		return subcommands.ExitFailure
	}

	d := cashflow.DraftOf(e)
	if c.kind != "" {
		if d.Kind, err = cashflow.ParseKind(c.kind); err != nil {
			fmt.Fprintln(stderr, userMessage(err))
			return subcommands.ExitUsageError
		}
	}
	if c.description != "" {
		d.Description = c.description
	}
	if c.amount != "" {
		d.Amount = c.amount
	}
	if c.date != "" {
		d.Date = c.date
	}
	if c.toBeReimbursed.set {
		d.SetToBeReimbursed(c.toBeReimbursed.value)
	}
	if c.reimbursed.set {
		if c.reimbursed.value && !c.toBeReimbursed.set {
			d.SetToBeReimbursed(true)
		}
		d.SetReimbursed(c.reimbursed.value)
	}

	intent, err := d.Submit(date.Today())
	if err != nil {
		reportValidation(err)
		return subcommands.ExitFailure
	}
	if _, err := ledger.Apply(intent); err != nil {
		reportValidation(err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Operazione modificata: %s\n", c.id)
	return subcommands.ExitSuccess
}
