package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cashflow"
	"github.com/google/subcommands"
)

type importCmd struct {
	yes    bool
	strict bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with a json backup" }
func (*importCmd) Usage() string {
	return `flucas import [-y] [-strict] <file>

  Replaces the whole ledger with the entries of a JSON backup, after a
  confirmation when the ledger is not empty. Use - to read the standard input.
  A file that cannot be read leaves the ledger untouched.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
	f.BoolVar(&c.strict, "strict", false, "Refuse the file if any entry has a problem.")
}

func (c *importCmd) read(name string) ([]cashflow.Entry, error) {
	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if c.strict {
		return cashflow.ImportJSONStrict(r)
	}
	return cashflow.ImportJSON(r)
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Errore: indica il file da importare.")
		return subcommands.ExitUsageError
	}
	entries, err := c.read(f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}

	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	if ledger.Len() > 0 && !c.yes {
		question := fmt.Sprintf("L'importazione sostituirà le %d operazioni esistenti. Continuare?", ledger.Len())
		if !confirm(question) {
			fmt.Fprintln(stderr, "Importazione annullata.")
			return subcommands.ExitSuccess
		}
	}

	ledger.ReplaceAll(entries)
	for _, err := range ledger.Check() {
		fmt.Fprintf(stderr, "Attenzione: %v\n", err)
	}
	fmt.Fprintf(stdout, "Importate %d operazioni.\n", ledger.Len())
	return subcommands.ExitSuccess
}
