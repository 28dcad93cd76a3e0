package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the current balance" }
func (*balanceCmd) Usage() string {
	return `flucas balance

  Shows the current balance, the total of incomes and expenses, and the
  expenses still waiting for a reimbursement.
`
}

func (*balanceCmd) SetFlags(f *flag.FlagSet) {}

func (*balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	printMarkdown(renderer.RenderBalance(&renderer.Balance{Balance: ledger.Balance(), Totals: ledger.Totals()}))
	return subcommands.ExitSuccess
}
