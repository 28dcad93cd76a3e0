package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// MsgConfirmDelete is the confirmation asked before removing an entry.
const MsgConfirmDelete = "Sei sicuro di voler eliminare questa operazione?"

type rmCmd struct {
	yes bool
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove entries" }
func (*rmCmd) Usage() string {
	return `flucas rm [-y] <id>...

  Removes entries, after a confirmation for each of them. There is no undo.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "Errore: indica almeno un'operazione da eliminare.")
		return subcommands.ExitUsageError
	}
	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		e, ok := ledger.Get(id)
		if !ok {
			fmt.Fprintf(stderr, "Operazione %q non trovata.\n", id)
			status = subcommands.ExitFailure
			continue
		}
		if !c.yes {
			fmt.Fprintf(stderr, "%s %s %s %s%s\n", e.Date, e.Kind.Label(), e.Description, e.Kind.Sign(), e.Amount)
			if !confirm(MsgConfirmDelete) {
				continue
			}
		}
		ledger.Remove(id)
		fmt.Fprintf(stdout, "Operazione eliminata: %s\n", id)
	}
	return status
}
