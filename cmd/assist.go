package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cashflow/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "talk with an AI assistant about the ledger" }
func (*assistCmd) Usage() string {
	return `flucas assist [<question>]

  Starts an interactive session with an AI assistant that can read the
  ledger, and record new entries once you approved them.
  The arguments, if any, are asked first.

  Requires GOOGLE_API_KEY (it can be set in a .env file).
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(stderr, "Errore: impossibile creare il client Gemini:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewBookkeeper(ledger))
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(stderr, "Errore dell'assistente:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
