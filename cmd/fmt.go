package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "checks and rewrites the store into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `flucas fmt

  Reads all entries, reports the ones with problems (empty description,
  amount not positive, unknown kind, missing date), fixes the reimbursement
  flags and writes the store back.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	problems := ledger.Check()
	for _, err := range problems {
		fmt.Fprintf(stderr, "Attenzione: %v\n", err)
	}
	if err := store.Save(ctx, ledger.Snapshot()); err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%d operazioni, %d con problemi.\n", ledger.Len(), len(problems))
	if len(problems) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
