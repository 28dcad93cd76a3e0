package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/etnz/cashflow/storage"
	"github.com/google/subcommands"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "print the balance every time the ledger changes" }
func (*watchCmd) Usage() string {
	return `flucas watch

  Prints the balance, then prints it again each time another flucas
  process changes the ledger. Only file stores can be watched.
  Stop with Ctrl-C.
`
}

func (*watchCmd) SetFlags(f *flag.FlagSet) {}

func (*watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	show := func(l *cashflow.Ledger) {
		printMarkdown(renderer.RenderBalance(&renderer.Balance{Balance: l.Balance(), Totals: l.Totals()}))
	}
	show(ledger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	err = store.Watch(ctx, func(entries []cashflow.Entry) {
		show(cashflow.NewLedger(entries...))
	})
	if errors.Is(err, storage.ErrNotWatchable) {
		fmt.Fprintf(stderr, "Errore: lo store %q non può essere osservato, usa file:<dir>.\n", StoreURI())
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
